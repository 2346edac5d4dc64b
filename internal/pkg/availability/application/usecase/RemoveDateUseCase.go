package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

type RemoveDateInput struct {
	UserName string
	Date     string
}

// RemoveDateUseCase clears one availability mark. Removing a date that was
// never added succeeds. Dates outside the range may be removed.
type RemoveDateUseCase struct {
	Repo   repository.AvailabilityRepository
	Roster Roster
	Cache  *SnapshotCache
}

func NewRemoveDateUseCase(repo repository.AvailabilityRepository, roster Roster, cache *SnapshotCache) *RemoveDateUseCase {
	return &RemoveDateUseCase{Repo: repo, Roster: roster, Cache: cache}
}

func (uc *RemoveDateUseCase) Execute(ctx context.Context, in RemoveDateInput) (WriteResult, error) {
	if err := checkParticipant(uc.Roster, in.UserName); err != nil {
		return WriteResult{}, err
	}
	d, err := caldate.Parse(in.Date)
	if err != nil {
		return WriteResult{}, err
	}

	err = uc.Repo.Delete(ctx, in.UserName, d)
	if errors.Is(err, repository.ErrUnavailable) {
		return WriteResult{Demo: true}, nil
	}
	if err != nil {
		return WriteResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Cache.Invalidate(ctx)
	return WriteResult{Changed: true}, nil
}
