package caldate

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"2025-10-05",
		"2025-01-01",
		"2025-12-31",
		"2024-02-29",
		"0999-07-04",
		"2100-02-28",
	}
	for _, s := range inputs {
		d, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no padding", "2025-1-05"},
		{"slashes", "2025/10/05"},
		{"month zero", "2025-00-10"},
		{"month thirteen", "2025-13-01"},
		{"day zero", "2025-10-00"},
		{"day past month end", "2025-11-31"},
		{"not a leap year", "2025-02-29"},
		{"century not leap", "2100-02-29"},
		{"signed component", "2025-+1-01"},
		{"time suffix", "2025-10-05T00:00:00Z"},
		{"letters", "abcd-ef-gh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.input, fe.Input)
		})
	}
}

func TestFromTimeKeepsLocalCalendarDay(t *testing.T) {
	// 23:30 in UTC-10 is already the next day in UTC; the local day must win.
	honolulu := time.FixedZone("HST", -10*60*60)
	late := time.Date(2025, time.October, 5, 23, 30, 0, 0, honolulu)
	assert.Equal(t, "2025-10-05", FromTime(late).String())

	// 00:15 in UTC+14 is still the previous day in UTC.
	kiritimati := time.FixedZone("LINT", 14*60*60)
	early := time.Date(2025, time.October, 6, 0, 15, 0, 0, kiritimati)
	assert.Equal(t, "2025-10-06", FromTime(early).String())
}

func TestDateTimeRoundTrip(t *testing.T) {
	d := MustParse("2025-10-05")
	assert.Equal(t, d, FromTime(d.Time()))
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("X", 3*60*60)
	want := FromTime(time.Now().In(loc))
	got := Today(loc)
	// Allow a midnight rollover between the two calls.
	assert.True(t, got == want || got == want.AddDays(1))
	assert.False(t, Today(nil).IsZero())
}

func TestCompare(t *testing.T) {
	pairs := [][2]string{
		{"2025-10-05", "2025-10-06"},
		{"2025-09-30", "2025-10-01"},
		{"2024-12-31", "2025-01-01"},
		{"0999-12-31", "1000-01-01"},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.Equal(t, -1, Compare(a, b), "%s < %s", a, b)
		assert.Equal(t, 1, Compare(b, a), "%s > %s", b, a)
		assert.Equal(t, 0, Compare(a, a))

		da, db := MustParse(a), MustParse(b)
		assert.Equal(t, -1, da.Compare(db))
		assert.Equal(t, 1, db.Compare(da))
		assert.Equal(t, 0, da.Compare(da))
		assert.True(t, da.Before(db))
		assert.True(t, db.After(da))
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2025-11-01", MustParse("2025-10-31").AddDays(1).String())
	assert.Equal(t, "2024-02-29", MustParse("2024-03-01").AddDays(-1).String())
	assert.Equal(t, "2026-01-01", MustParse("2025-12-31").AddDays(1).String())
}

func TestNewNormalizesOverflow(t *testing.T) {
	assert.Equal(t, "2025-11-01", New(2025, time.October, 32).String())
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Sunday, MustParse("2025-10-05").Weekday())
}

func TestJSONUsesCanonicalForm(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}
	raw, err := json.Marshal(payload{Date: MustParse("2025-10-05")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-10-05"}`, string(raw))

	var back payload
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, MustParse("2025-10-05"), back.Date)

	err = json.Unmarshal([]byte(`{"date":"2025-13-01"}`), &back)
	assert.True(t, errors.Is(err, ErrFormat))
}
