// Package caldate implements pure calendar dates: a year, month and day with
// no time-of-day or zone attached. The canonical text form is YYYY-MM-DD,
// which sorts lexicographically in calendar order.
package caldate

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Layout is the canonical text layout of a Date.
const Layout = "2006-01-02"

// ErrFormat is matched by every FormatError.
var ErrFormat = errors.New("caldate: invalid date format")

// FormatError reports a string that is not a valid YYYY-MM-DD calendar date.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("caldate: invalid date %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// Date is a calendar day. The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New builds a Date, normalizing overflow the way time.Date does
// (e.g. October 32 becomes November 1).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day t falls on in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// Parse reads a canonical YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return Date{}, &FormatError{Input: s, Reason: "expected YYYY-MM-DD"}
	}
	year, err := digits(s[0:4])
	if err != nil {
		return Date{}, &FormatError{Input: s, Reason: "year is not numeric"}
	}
	month, err := digits(s[5:7])
	if err != nil {
		return Date{}, &FormatError{Input: s, Reason: "month is not numeric"}
	}
	day, err := digits(s[8:10])
	if err != nil {
		return Date{}, &FormatError{Input: s, Reason: "day is not numeric"}
	}
	if month < 1 || month > 12 {
		return Date{}, &FormatError{Input: s, Reason: "month out of range"}
	}
	ym := YearMonth{Year: year, Month: time.Month(month)}
	if day < 1 || day > ym.DaysIn() {
		return Date{}, &FormatError{Input: s, Reason: "day out of range for month"}
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// digits parses an all-digit string; strconv.Atoi alone would accept signs.
func digits(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// String returns the zero-padded YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d. It is only meant for arithmetic and for
// libraries that need a time.Time; FromTime(d.Time()) == d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// YearMonth returns the month d belongs to.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// Compare returns -1, 0 or 1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// MarshalText encodes d in canonical form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a canonical date.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Compare orders two canonical date strings. Canonical strings sort in
// calendar order, so this is a plain lexicographic comparison.
func Compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
