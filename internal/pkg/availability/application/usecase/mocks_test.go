package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListAll(ctx context.Context) ([]availability.Record, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]availability.Record)
	return recs, args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userName string) ([]availability.Record, error) {
	args := m.Called(ctx, userName)
	recs, _ := args.Get(0).([]availability.Record)
	return recs, args.Error(1)
}

func (m *mockRepo) Insert(ctx context.Context, r availability.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, userName string, date caldate.Date) error {
	return m.Called(ctx, userName, date).Error(0)
}

func (m *mockRepo) DeleteByUser(ctx context.Context, userName string) (int64, error) {
	args := m.Called(ctx, userName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) ReplaceForUser(ctx context.Context, userName string, records []availability.Record) error {
	return m.Called(ctx, userName, records).Error(0)
}

func (m *mockRepo) DeleteBefore(ctx context.Context, cutoff caldate.Date) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type stubRoster map[string]bool

func (s stubRoster) Has(name string) bool { return s[name] }
