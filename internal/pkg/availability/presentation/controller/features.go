package controller

import (
	"context"
	"fmt"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

// exclusiveGuard enforces single-owner dates when multi-user selection is
// off. A nil guard allows everything.
type exclusiveGuard struct {
	load *usecase.LoadAvailabilityUseCase
}

func newExclusiveGuard(multiUser bool, load *usecase.LoadAvailabilityUseCase) *exclusiveGuard {
	if multiUser {
		return nil
	}
	return &exclusiveGuard{load: load}
}

// check fails with ErrDateTaken when any of dates is held by someone other
// than user.
func (g *exclusiveGuard) check(ctx context.Context, user string, dates ...caldate.Date) error {
	if g == nil || len(dates) == 0 {
		return nil
	}
	records, err := g.load.Execute(ctx, usecase.LoadAvailabilityInput{})
	if err != nil {
		return err
	}
	idx := availability.NewIndex(records)
	for _, d := range dates {
		for _, other := range idx.UsersOn(d) {
			if other != user {
				return fmt.Errorf("%w: %s is taken by %s", ErrDateTaken, d, other)
			}
		}
	}
	return nil
}
