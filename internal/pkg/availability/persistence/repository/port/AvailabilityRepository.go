package repository

import (
	"context"
	"errors"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
)

var (
	// ErrDuplicate is returned by Insert when (user, date) already exists.
	ErrDuplicate = errors.New("availability repository: duplicate record")
	// ErrUnavailable means the backend is not configured. Use cases treat it
	// as demo mode rather than a failure.
	ErrUnavailable = errors.New("availability repository: backend unavailable")
)

// AvailabilityRepository defines persistence operations for availability records.
// List results are ordered by date, then user name.
type AvailabilityRepository interface {
	ListAll(ctx context.Context) ([]availability.Record, error)
	ListByUser(ctx context.Context, userName string) ([]availability.Record, error)
	Insert(ctx context.Context, r availability.Record) error
	// Delete removes (user, date). Deleting a missing row is not an error.
	Delete(ctx context.Context, userName string, date caldate.Date) error
	DeleteByUser(ctx context.Context, userName string) (int64, error)
	// ReplaceForUser atomically swaps every record of the user for records.
	ReplaceForUser(ctx context.Context, userName string, records []availability.Record) error
	// DeleteBefore removes records dated strictly before cutoff.
	DeleteBefore(ctx context.Context, cutoff caldate.Date) (int64, error)
}
