package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

// PruneExpiredInput removes records dated before Before. A zero Before means
// the first day of the current range.
type PruneExpiredInput struct {
	Before caldate.Date
}

// PruneExpiredUseCase deletes marks that can no longer be selected.
type PruneExpiredUseCase struct {
	Repo  repository.AvailabilityRepository
	Range RangeFunc
	Cache *SnapshotCache
}

func NewPruneExpiredUseCase(repo repository.AvailabilityRepository, rangeFn RangeFunc, cache *SnapshotCache) *PruneExpiredUseCase {
	return &PruneExpiredUseCase{Repo: repo, Range: rangeFn, Cache: cache}
}

// Execute returns how many records were removed.
func (uc *PruneExpiredUseCase) Execute(ctx context.Context, in PruneExpiredInput) (int64, error) {
	cutoff := in.Before
	if cutoff.IsZero() {
		if uc.Range == nil {
			return 0, errors.New("prune: no cutoff and no range")
		}
		cutoff = uc.Range().StartDate()
	}

	n, err := uc.Repo.DeleteBefore(ctx, cutoff)
	if errors.Is(err, repository.ErrUnavailable) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if n > 0 {
		uc.Cache.Invalidate(ctx)
	}
	return n, nil
}
