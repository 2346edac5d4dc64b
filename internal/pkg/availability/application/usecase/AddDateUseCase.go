package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

// AddDateInput marks UserName available on Date (YYYY-MM-DD).
type AddDateInput struct {
	UserName string
	Date     string
}

// AddDateUseCase records availability. Adding an existing date succeeds
// without a change.
type AddDateUseCase struct {
	Repo   repository.AvailabilityRepository
	Roster Roster
	Range  RangeFunc
	Cache  *SnapshotCache
	Now    Clock
}

func NewAddDateUseCase(repo repository.AvailabilityRepository, roster Roster, rangeFn RangeFunc, cache *SnapshotCache) *AddDateUseCase {
	return &AddDateUseCase{Repo: repo, Roster: roster, Range: rangeFn, Cache: cache}
}

func (uc *AddDateUseCase) Execute(ctx context.Context, in AddDateInput) (WriteResult, error) {
	if err := checkParticipant(uc.Roster, in.UserName); err != nil {
		return WriteResult{}, err
	}
	d, err := caldate.Parse(in.Date)
	if err != nil {
		return WriteResult{}, err
	}
	if err := checkRange(uc.Range, d); err != nil {
		return WriteResult{}, err
	}

	rec, err := availability.NewRecord(in.UserName, d, now(uc.Now))
	if err != nil {
		return WriteResult{}, err
	}

	err = uc.Repo.Insert(ctx, rec)
	switch {
	case errors.Is(err, repository.ErrUnavailable):
		return WriteResult{Demo: true}, nil
	case errors.Is(err, repository.ErrDuplicate):
		return WriteResult{}, nil
	case err != nil:
		return WriteResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Cache.Invalidate(ctx)
	return WriteResult{Changed: true}, nil
}
