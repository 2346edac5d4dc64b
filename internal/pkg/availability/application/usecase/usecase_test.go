package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	cacheAdapter "github.com/FlintShadey/huddleuptime/internal/infrastructure/cache/adapter"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repoAdapter "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/adapter"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

type fixture struct {
	load    *LoadAvailabilityUseCase
	list    *ListParticipantDatesUseCase
	add     *AddDateUseCase
	remove  *RemoveDateUseCase
	toggle  *ToggleDateUseCase
	replace *ReplaceDatesUseCase
	prune   *PruneExpiredUseCase
}

func octToDec() caldate.Range { return caldate.StaticRange(2025, 10, 2025, 12) }

func newFixture(repo repository.AvailabilityRepository, cache *SnapshotCache) fixture {
	roster := stubRoster{"A": true, "B": true}
	add := NewAddDateUseCase(repo, roster, octToDec, cache)
	remove := NewRemoveDateUseCase(repo, roster, cache)
	return fixture{
		load:    NewLoadAvailabilityUseCase(repo, cache),
		list:    NewListParticipantDatesUseCase(repo, roster),
		add:     add,
		remove:  remove,
		toggle:  NewToggleDateUseCase(add, remove),
		replace: NewReplaceDatesUseCase(repo, roster, octToDec, cache),
		prune:   NewPruneExpiredUseCase(repo, octToDec, cache),
	}
}

func dateStrings(ds []caldate.Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func TestAddTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)

	res, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	assert.False(t, res.Changed)

	dates, err := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-05"}, dateStrings(dates))
}

func TestAddThenRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)

	_, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	_, err = f.remove.Execute(ctx, RemoveDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)

	dates, err := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestToggleMatchesAddAndRemove(t *testing.T) {
	ctx := context.Background()
	viaToggle := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)
	direct := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)

	steps := []ToggleDateInput{
		{UserName: "A", Date: "2025-10-05", Selected: true},
		{UserName: "A", Date: "2025-10-06", Selected: true},
		{UserName: "A", Date: "2025-10-05", Selected: false},
		{UserName: "A", Date: "2025-10-09", Selected: false},
	}
	for _, s := range steps {
		_, err := viaToggle.toggle.Execute(ctx, s)
		require.NoError(t, err)
		if s.Selected {
			_, err = direct.add.Execute(ctx, AddDateInput{UserName: s.UserName, Date: s.Date})
		} else {
			_, err = direct.remove.Execute(ctx, RemoveDateInput{UserName: s.UserName, Date: s.Date})
		}
		require.NoError(t, err)
	}

	a, _ := viaToggle.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	b, _ := direct.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	assert.Equal(t, dateStrings(b), dateStrings(a))
	assert.Equal(t, []string{"2025-10-06"}, dateStrings(a))
}

func TestTwoParticipantsEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)

	for _, in := range []AddDateInput{
		{UserName: "A", Date: "2025-10-05"},
		{UserName: "B", Date: "2025-10-05"},
		{UserName: "A", Date: "2025-10-06"},
	} {
		_, err := f.add.Execute(ctx, in)
		require.NoError(t, err)
	}

	all, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].UserName)
	assert.Equal(t, "2025-10-05", all[0].Date.String())
	assert.Equal(t, "B", all[1].UserName)
	assert.Equal(t, "2025-10-06", all[2].Date.String())

	bDates, err := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-05"}, dateStrings(bDates))
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)

	_, err := f.add.Execute(ctx, AddDateInput{UserName: "Z", Date: "2025-10-05"})
	assert.ErrorIs(t, err, ErrUnknownParticipant)

	_, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-13-01"})
	assert.ErrorIs(t, err, caldate.ErrFormat)

	_, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2026-01-01"})
	assert.ErrorIs(t, err, ErrOutOfRange)

	// Range boundaries are inclusive.
	_, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-01"})
	assert.NoError(t, err)
	_, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-12-31"})
	assert.NoError(t, err)

	// Removal outside the range is allowed.
	_, err = f.remove.Execute(ctx, RemoveDateInput{UserName: "A", Date: "2024-01-01"})
	assert.NoError(t, err)

	_, err = f.list.Execute(ctx, ListParticipantDatesInput{UserName: ""})
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestReplaceDedupesAndSorts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)

	_, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-11-01"})
	require.NoError(t, err)
	_, err = f.add.Execute(ctx, AddDateInput{UserName: "B", Date: "2025-11-01"})
	require.NoError(t, err)

	out, err := f.replace.Execute(ctx, ReplaceDatesInput{
		UserName: "A",
		Dates:    []string{"2025-10-09", "2025-10-07", "2025-10-09"},
	})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"2025-10-07", "2025-10-09"}, dateStrings(out.Dates))

	a, _ := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	assert.Equal(t, []string{"2025-10-07", "2025-10-09"}, dateStrings(a))
	b, _ := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "B"})
	assert.Equal(t, []string{"2025-11-01"}, dateStrings(b))

	_, err = f.replace.Execute(ctx, ReplaceDatesInput{UserName: "A"})
	require.NoError(t, err)
	a, _ = f.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	assert.Empty(t, a)
}

func TestReplaceRejectsBadInputWithoutWriting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewMemoryAvailabilityRepository(nil), nil)
	_, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)

	_, err = f.replace.Execute(ctx, ReplaceDatesInput{UserName: "A", Dates: []string{"2025-10-06", "bogus"}})
	assert.ErrorIs(t, err, caldate.ErrFormat)

	_, err = f.replace.Execute(ctx, ReplaceDatesInput{UserName: "A", Dates: []string{"2025-09-30"}})
	assert.ErrorIs(t, err, ErrOutOfRange)

	a, _ := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	assert.Equal(t, []string{"2025-10-05"}, dateStrings(a))
}

func TestDemoModeDegrades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repoAdapter.NewDemoAvailabilityRepository(), nil)

	all, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	res, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	assert.True(t, res.Demo)

	res, err = f.remove.Execute(ctx, RemoveDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	assert.True(t, res.Demo)

	out, err := f.replace.Execute(ctx, ReplaceDatesInput{UserName: "A", Dates: []string{"2025-10-05"}})
	require.NoError(t, err)
	assert.True(t, out.Demo)

	dates, err := f.list.Execute(ctx, ListParticipantDatesInput{UserName: "A"})
	require.NoError(t, err)
	assert.Empty(t, dates)

	n, err := f.prune.Execute(ctx, PruneExpiredInput{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBackendFailuresWrapPersistence(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	repo := new(mockRepo)
	repo.On("ListAll", mock.Anything).Return(nil, boom)
	repo.On("Insert", mock.Anything, mock.Anything).Return(boom)
	repo.On("Delete", mock.Anything, "A", mock.Anything).Return(boom)
	repo.On("ReplaceForUser", mock.Anything, "A", mock.Anything).Return(boom)
	repo.On("DeleteBefore", mock.Anything, mock.Anything).Return(int64(0), boom)

	f := newFixture(repo, nil)

	_, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	assert.ErrorIs(t, err, ErrPersistence)
	_, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	assert.ErrorIs(t, err, ErrPersistence)
	_, err = f.remove.Execute(ctx, RemoveDateInput{UserName: "A", Date: "2025-10-05"})
	assert.ErrorIs(t, err, ErrPersistence)
	_, err = f.replace.Execute(ctx, ReplaceDatesInput{UserName: "A", Dates: []string{"2025-10-05"}})
	assert.ErrorIs(t, err, ErrPersistence)
	_, err = f.prune.Execute(ctx, PruneExpiredInput{})
	assert.ErrorIs(t, err, ErrPersistence)

	repo.AssertExpectations(t)
}

func TestAddStampsRecord(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(r availability.Record) bool {
		return r.UserName == "A" && r.Date.String() == "2025-10-05" && !r.UpdatedAt.IsZero()
	})).Return(nil).Once()

	f := newFixture(repo, nil)
	_, err := f.add.Execute(context.Background(), AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPruneUsesRangeStart(t *testing.T) {
	repo := new(mockRepo)
	repo.On("DeleteBefore", mock.Anything, caldate.MustParse("2025-10-01")).Return(int64(3), nil).Once()

	f := newFixture(repo, nil)
	n, err := f.prune.Execute(context.Background(), PruneExpiredInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	repo.AssertExpectations(t)
}

func TestLoadReadsThroughSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	stored := []availability.Record{{UserName: "A", Date: caldate.MustParse("2025-10-05")}}
	repo.On("ListAll", mock.Anything).Return(stored, nil).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	cache := NewSnapshotCache(cacheAdapter.NewMemoryCache())
	f := newFixture(repo, cache)

	first, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	second, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	assert.Equal(t, dateStringsOf(first), dateStringsOf(second))
	repo.AssertNumberOfCalls(t, "ListAll", 1)

	// A write drops the snapshot.
	_, err = f.add.Execute(ctx, AddDateInput{UserName: "B", Date: "2025-10-06"})
	require.NoError(t, err)
	repo.On("ListAll", mock.Anything).Return(stored, nil).Once()
	_, err = f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListAll", 2)
}

// interleavingRepo runs afterList once, after ListAll has read the store but
// before the caller sees the result.
type interleavingRepo struct {
	repository.AvailabilityRepository
	afterList func()
}

func (r *interleavingRepo) ListAll(ctx context.Context) ([]availability.Record, error) {
	recs, err := r.AvailabilityRepository.ListAll(ctx)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return recs, err
}

func TestLoadDoesNotCacheSnapshotOlderThanWrite(t *testing.T) {
	ctx := context.Background()
	repo := &interleavingRepo{AvailabilityRepository: repoAdapter.NewMemoryAvailabilityRepository(nil)}
	f := newFixture(repo, NewSnapshotCache(cacheAdapter.NewMemoryCache()))

	repo.afterList = func() {
		_, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
		require.NoError(t, err)
	}
	stale, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := f.load.Execute(ctx, LoadAvailabilityInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-05"}, dateStringsOf(fresh))
}

func TestLoadWithinRange(t *testing.T) {
	ctx := context.Background()
	repo := repoAdapter.NewMemoryAvailabilityRepository(nil)
	f := newFixture(repo, nil)
	_, err := f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-10-05"})
	require.NoError(t, err)
	_, err = f.add.Execute(ctx, AddDateInput{UserName: "A", Date: "2025-12-05"})
	require.NoError(t, err)

	oct := caldate.StaticRange(2025, 10, 2025, 10)
	recs, err := f.load.Execute(ctx, LoadAvailabilityInput{Within: &oct})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-05"}, dateStringsOf(recs))
}

func dateStringsOf(recs []availability.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Date.String()
	}
	return out
}
