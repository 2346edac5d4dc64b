package caldate

import (
	"fmt"
	"iter"
	"time"

	"github.com/teambition/rrule-go"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// FirstDay returns the first day of ym.
func (ym YearMonth) FirstDay() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: 1}
}

// LastDay returns the last day of ym.
func (ym YearMonth) LastDay() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: ym.DaysIn()}
}

// DaysIn returns the number of days in ym.
func (ym YearMonth) DaysIn() int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths returns ym shifted by n months.
func (ym YearMonth) AddMonths(n int) YearMonth {
	t := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Next returns the month after ym.
func (ym YearMonth) Next() YearMonth { return ym.AddMonths(1) }

// Compare returns -1, 0 or 1 as ym is before, equal to or after o.
func (ym YearMonth) Compare(o YearMonth) int {
	return ym.FirstDay().Compare(o.FirstDay())
}

// String returns YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Range is an inclusive span of whole months.
type Range struct {
	Start YearMonth `json:"start"`
	End   YearMonth `json:"end"`
}

// StaticRange builds a Range from configured year/month pairs.
func StaticRange(startYear, startMonth, endYear, endMonth int) Range {
	return Range{
		Start: YearMonth{Year: startYear, Month: time.Month(startMonth)},
		End:   YearMonth{Year: endYear, Month: time.Month(endMonth)},
	}
}

// DynamicRange spans from the month of today through months months later.
func DynamicRange(today Date, months int) Range {
	start := today.YearMonth()
	return Range{Start: start, End: start.AddMonths(months)}
}

// StartDate is the first selectable day.
func (r Range) StartDate() Date { return r.Start.FirstDay() }

// EndDate is the last selectable day.
func (r Range) EndDate() Date { return r.End.LastDay() }

// Valid reports whether r has well-formed months and does not end before it starts.
func (r Range) Valid() bool {
	if r.Start.Month < time.January || r.Start.Month > time.December {
		return false
	}
	if r.End.Month < time.January || r.End.Month > time.December {
		return false
	}
	return r.Start.Compare(r.End) <= 0
}

// Contains reports whether d lies within r, boundaries included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.StartDate()) && !d.After(r.EndDate())
}

// InRange parses s and reports whether it lies within r. Malformed input is
// never in range.
func InRange(s string, r Range) bool {
	d, err := Parse(s)
	if err != nil {
		return false
	}
	return r.Contains(d)
}

// Months lists every month of r in ascending order.
func (r Range) Months() []YearMonth {
	out := make([]YearMonth, 0)
	for ym := range r.AllMonths() {
		out = append(out, ym)
	}
	return out
}

// AllMonths yields every month of r in ascending order. Each call starts a
// fresh enumeration.
func (r Range) AllMonths() iter.Seq[YearMonth] {
	return func(yield func(YearMonth) bool) {
		if !r.Valid() {
			return
		}
		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:    rrule.MONTHLY,
			Dtstart: r.StartDate().Time(),
			Until:   r.End.FirstDay().Time(),
		})
		if err != nil {
			for ym := r.Start; ym.Compare(r.End) <= 0; ym = ym.Next() {
				if !yield(ym) {
					return
				}
			}
			return
		}
		next := rule.Iterator()
		for {
			t, ok := next()
			if !ok {
				return
			}
			if !yield(YearMonth{Year: t.Year(), Month: t.Month()}) {
				return
			}
		}
	}
}

// DisplayString renders r as "Oct 2025 - Dec 2025".
func (r Range) DisplayString() string {
	return fmt.Sprintf("%s %d - %s %d",
		ShortMonthName(int(r.Start.Month)), r.Start.Year,
		ShortMonthName(int(r.End.Month)), r.End.Year)
}
