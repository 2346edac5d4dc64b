package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

type ListParticipantDatesInput struct {
	UserName string
}

// ListParticipantDatesUseCase returns the dates one participant selected.
type ListParticipantDatesUseCase struct {
	Repo   repository.AvailabilityRepository
	Roster Roster
}

func NewListParticipantDatesUseCase(repo repository.AvailabilityRepository, roster Roster) *ListParticipantDatesUseCase {
	return &ListParticipantDatesUseCase{Repo: repo, Roster: roster}
}

// Execute returns ascending dates; none in demo mode.
func (uc *ListParticipantDatesUseCase) Execute(ctx context.Context, in ListParticipantDatesInput) ([]caldate.Date, error) {
	if err := checkParticipant(uc.Roster, in.UserName); err != nil {
		return nil, err
	}

	records, err := uc.Repo.ListByUser(ctx, in.UserName)
	if errors.Is(err, repository.ErrUnavailable) {
		return []caldate.Date{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	dates := make([]caldate.Date, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	return dates, nil
}
