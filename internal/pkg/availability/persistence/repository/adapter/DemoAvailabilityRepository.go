package adapter

import (
	"context"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

// DemoAvailabilityRepository stands in when no database is configured.
// Every call reports ErrUnavailable.
type DemoAvailabilityRepository struct{}

func NewDemoAvailabilityRepository() *DemoAvailabilityRepository {
	return &DemoAvailabilityRepository{}
}

var _ repository.AvailabilityRepository = (*DemoAvailabilityRepository)(nil)

func (DemoAvailabilityRepository) ListAll(context.Context) ([]availability.Record, error) {
	return nil, repository.ErrUnavailable
}

func (DemoAvailabilityRepository) ListByUser(context.Context, string) ([]availability.Record, error) {
	return nil, repository.ErrUnavailable
}

func (DemoAvailabilityRepository) Insert(context.Context, availability.Record) error {
	return repository.ErrUnavailable
}

func (DemoAvailabilityRepository) Delete(context.Context, string, caldate.Date) error {
	return repository.ErrUnavailable
}

func (DemoAvailabilityRepository) DeleteByUser(context.Context, string) (int64, error) {
	return 0, repository.ErrUnavailable
}

func (DemoAvailabilityRepository) ReplaceForUser(context.Context, string, []availability.Record) error {
	return repository.ErrUnavailable
}

func (DemoAvailabilityRepository) DeleteBefore(context.Context, caldate.Date) (int64, error) {
	return 0, repository.ErrUnavailable
}
