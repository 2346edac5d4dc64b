package usecase

import (
	"fmt"
	"time"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
)

// Roster reports which participant names are configured.
type Roster interface {
	Has(name string) bool
}

// RangeFunc returns the range that is selectable right now.
type RangeFunc func() caldate.Range

// Clock returns the current instant.
type Clock func() time.Time

// WriteResult describes the outcome of a write.
type WriteResult struct {
	// Changed is false when the store already held the requested state.
	Changed bool `json:"changed"`
	// Demo is true when no backend is configured and nothing was persisted.
	Demo bool `json:"demo"`
}

func checkParticipant(r Roster, name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrUnknownParticipant)
	}
	if r != nil && !r.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
	}
	return nil
}

func checkRange(rangeFn RangeFunc, d caldate.Date) error {
	if rangeFn == nil {
		return nil
	}
	r := rangeFn()
	if !r.Contains(d) {
		return fmt.Errorf("%w: %s is not within %s", ErrOutOfRange, d, r.DisplayString())
	}
	return nil
}

func now(c Clock) time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
