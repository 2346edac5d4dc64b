package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

// LoadAvailabilityInput optionally narrows the result to a range.
type LoadAvailabilityInput struct {
	Within *caldate.Range
}

// LoadAvailabilityUseCase returns every stored record, ordered by date then user.
type LoadAvailabilityUseCase struct {
	Repo  repository.AvailabilityRepository
	Cache *SnapshotCache
}

func NewLoadAvailabilityUseCase(repo repository.AvailabilityRepository, cache *SnapshotCache) *LoadAvailabilityUseCase {
	return &LoadAvailabilityUseCase{Repo: repo, Cache: cache}
}

// Execute reads through the snapshot cache. With no backend configured it
// returns an empty list.
func (uc *LoadAvailabilityUseCase) Execute(ctx context.Context, in LoadAvailabilityInput) ([]availability.Record, error) {
	records, gen, ok := uc.Cache.Get(ctx)
	if !ok {
		var err error
		records, err = uc.Repo.ListAll(ctx)
		if errors.Is(err, repository.ErrUnavailable) {
			return []availability.Record{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		uc.Cache.Set(ctx, gen, records)
	}

	if in.Within == nil {
		return records, nil
	}
	out := make([]availability.Record, 0, len(records))
	for _, r := range records {
		if in.Within.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}
