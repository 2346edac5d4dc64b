package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

// ReplaceDatesInput makes Dates the complete set of UserName's marks.
// Duplicate entries are collapsed.
type ReplaceDatesInput struct {
	UserName string
	Dates    []string
}

type ReplaceDatesOutput struct {
	WriteResult
	Dates []caldate.Date `json:"dates"`
}

// ReplaceDatesUseCase swaps a participant's whole date set in one backend
// transaction.
type ReplaceDatesUseCase struct {
	Repo   repository.AvailabilityRepository
	Roster Roster
	Range  RangeFunc
	Cache  *SnapshotCache
	Now    Clock
}

func NewReplaceDatesUseCase(repo repository.AvailabilityRepository, roster Roster, rangeFn RangeFunc, cache *SnapshotCache) *ReplaceDatesUseCase {
	return &ReplaceDatesUseCase{Repo: repo, Roster: roster, Range: rangeFn, Cache: cache}
}

func (uc *ReplaceDatesUseCase) Execute(ctx context.Context, in ReplaceDatesInput) (ReplaceDatesOutput, error) {
	if err := checkParticipant(uc.Roster, in.UserName); err != nil {
		return ReplaceDatesOutput{}, err
	}

	dates, err := uniqueDates(in.Dates)
	if err != nil {
		return ReplaceDatesOutput{}, err
	}
	for _, d := range dates {
		if err := checkRange(uc.Range, d); err != nil {
			return ReplaceDatesOutput{}, err
		}
	}

	ts := now(uc.Now)
	if len(dates) == 0 {
		_, err = uc.Repo.DeleteByUser(ctx, in.UserName)
	} else {
		records := make([]availability.Record, 0, len(dates))
		for _, d := range dates {
			rec, rerr := availability.NewRecord(in.UserName, d, ts)
			if rerr != nil {
				return ReplaceDatesOutput{}, rerr
			}
			records = append(records, rec)
		}
		err = uc.Repo.ReplaceForUser(ctx, in.UserName, records)
	}

	out := ReplaceDatesOutput{Dates: dates}
	if errors.Is(err, repository.ErrUnavailable) {
		out.Demo = true
		return out, nil
	}
	if err != nil {
		return ReplaceDatesOutput{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Cache.Invalidate(ctx)
	out.Changed = true
	return out, nil
}

func uniqueDates(raw []string) ([]caldate.Date, error) {
	seen := make(map[caldate.Date]struct{}, len(raw))
	dates := make([]caldate.Date, 0, len(raw))
	for _, s := range raw {
		d, err := caldate.Parse(s)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	slices.SortFunc(dates, caldate.Date.Compare)
	return dates, nil
}
