package caldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeBoundaries(t *testing.T) {
	r := StaticRange(2025, 10, 2025, 12)

	assert.Equal(t, "2025-10-01", r.StartDate().String())
	assert.Equal(t, "2025-12-31", r.EndDate().String())

	assert.True(t, InRange("2025-10-01", r))
	assert.True(t, InRange("2025-12-31", r))
	assert.True(t, InRange("2025-11-15", r))

	assert.False(t, InRange("2025-09-30", r))
	assert.False(t, InRange("2026-01-01", r))
	assert.False(t, InRange("not-a-date", r))
}

func TestMonthsInRange(t *testing.T) {
	r := StaticRange(2025, 10, 2025, 12)
	want := []YearMonth{
		{Year: 2025, Month: time.October},
		{Year: 2025, Month: time.November},
		{Year: 2025, Month: time.December},
	}
	assert.Equal(t, want, r.Months())

	// Restartable: a second enumeration yields the same sequence.
	assert.Equal(t, want, r.Months())
}

func TestMonthsInRangeAcrossYears(t *testing.T) {
	r := StaticRange(2025, 11, 2026, 2)
	got := r.Months()
	require.Len(t, got, 4)
	assert.Equal(t, YearMonth{Year: 2025, Month: time.November}, got[0])
	assert.Equal(t, YearMonth{Year: 2026, Month: time.February}, got[3])
}

func TestMonthsEarlyStop(t *testing.T) {
	r := StaticRange(2025, 1, 2025, 12)
	count := 0
	for range r.AllMonths() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestInvalidRangeIsEmpty(t *testing.T) {
	assert.Empty(t, StaticRange(2026, 1, 2025, 12).Months())
	assert.Empty(t, StaticRange(2025, 13, 2026, 1).Months())
}

func TestDynamicRange(t *testing.T) {
	r := DynamicRange(MustParse("2025-11-17"), 3)
	assert.Equal(t, YearMonth{Year: 2025, Month: time.November}, r.Start)
	assert.Equal(t, YearMonth{Year: 2026, Month: time.February}, r.End)
	assert.Len(t, r.Months(), 4)
}

func TestYearMonthDaysIn(t *testing.T) {
	assert.Equal(t, 29, YearMonth{Year: 2024, Month: time.February}.DaysIn())
	assert.Equal(t, 28, YearMonth{Year: 2025, Month: time.February}.DaysIn())
	assert.Equal(t, 31, YearMonth{Year: 2025, Month: time.December}.DaysIn())
	assert.Equal(t, YearMonth{Year: 2026, Month: time.January}, YearMonth{Year: 2025, Month: time.December}.Next())
}

func TestDisplayString(t *testing.T) {
	assert.Equal(t, "Oct 2025 - Dec 2025", StaticRange(2025, 10, 2025, 12).DisplayString())
}
