package availability

import (
	"encoding/json"
	"fmt"
)

// ChangeType mirrors the row operation that produced a ChangeEvent.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent describes one row change in the availability table.
// New is set for INSERT and UPDATE; Old is set for DELETE and, when the backend
// provides it, UPDATE.
type ChangeEvent struct {
	Type ChangeType `json:"type"`
	New  *Record    `json:"new,omitempty"`
	Old  *Record    `json:"old,omitempty"`
}

// Inserted builds the event emitted after r was stored.
func Inserted(r Record) ChangeEvent {
	return ChangeEvent{Type: ChangeInsert, New: &r}
}

// Deleted builds the event emitted after r was removed.
func Deleted(r Record) ChangeEvent {
	return ChangeEvent{Type: ChangeDelete, Old: &r}
}

// ParseChangeEvent decodes a notification payload and checks it is usable.
func ParseChangeEvent(payload []byte) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ChangeEvent{}, fmt.Errorf("availability: decode change event: %w", err)
	}
	switch ev.Type {
	case ChangeInsert, ChangeUpdate:
		if ev.New == nil {
			return ChangeEvent{}, fmt.Errorf("availability: %s event without new row", ev.Type)
		}
	case ChangeDelete:
		if ev.Old == nil {
			return ChangeEvent{}, fmt.Errorf("availability: DELETE event without old row")
		}
	default:
		return ChangeEvent{}, fmt.Errorf("availability: unknown change type %q", ev.Type)
	}
	return ev, nil
}
