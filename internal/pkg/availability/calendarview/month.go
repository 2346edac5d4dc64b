// Package calendarview turns availability records into the month grids and
// shared-date summaries the browser renders.
package calendarview

import (
	"fmt"
	"time"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// Selection is one participant's mark on a day, with the colours to draw it.
type Selection struct {
	UserName  string `json:"userName"`
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

type Day struct {
	Date    caldate.Date `json:"date"`
	InMonth bool         `json:"inMonth"`
	// InRange is false for days that cannot be selected.
	InRange bool `json:"inRange"`
	Today   bool `json:"today"`
	// Everyone is set when every configured participant selected the day.
	Everyone   bool        `json:"everyone"`
	Selections []Selection `json:"selections"`
}

type Week [7]Day

type Month struct {
	Month    caldate.YearMonth  `json:"month"`
	Title    string             `json:"title"`
	Weekdays []string           `json:"weekdays"`
	Weeks    []Week             `json:"weeks"`
	Prev     *caldate.YearMonth `json:"prev,omitempty"`
	Next     *caldate.YearMonth `json:"next,omitempty"`
}

type Options struct {
	WeekStartsMonday bool
	Today            caldate.Date
	Range            caldate.Range
	// Navigation fills Prev/Next with neighbouring months inside Range.
	Navigation bool
}

// BuildMonth lays out ym as whole weeks and overlays records. Leading and
// trailing days from adjacent months are included with InMonth false.
func BuildMonth(ym caldate.YearMonth, records []availability.Record, reg *roster.Registry, opts Options) Month {
	idx := availability.NewIndex(records)

	first := ym.FirstDay()
	last := ym.LastDay()
	start := first.AddDays(-leadingDays(first.Weekday(), opts.WeekStartsMonday))

	m := Month{
		Month:    ym,
		Title:    fmt.Sprintf("%s %d", caldate.MonthName(int(ym.Month)), ym.Year),
		Weekdays: weekdayHeaders(opts.WeekStartsMonday),
	}

	for d := start; !d.After(last); {
		var w Week
		for i := range w {
			w[i] = buildDay(d, ym, idx, reg, opts)
			d = d.AddDays(1)
		}
		m.Weeks = append(m.Weeks, w)
	}

	if opts.Navigation && opts.Range.Valid() {
		if prev := ym.AddMonths(-1); prev.Compare(opts.Range.Start) >= 0 {
			m.Prev = &prev
		}
		if next := ym.Next(); next.Compare(opts.Range.End) <= 0 {
			m.Next = &next
		}
	}
	return m
}

func buildDay(d caldate.Date, ym caldate.YearMonth, idx *availability.Index, reg *roster.Registry, opts Options) Day {
	day := Day{
		Date:       d,
		InMonth:    d.YearMonth() == ym,
		InRange:    opts.Range.Valid() && opts.Range.Contains(d),
		Today:      d == opts.Today,
		Selections: []Selection{},
	}

	users := idx.UsersOn(d)
	if len(users) == 0 {
		return day
	}
	picked := make(map[string]struct{}, len(users))
	for _, u := range users {
		picked[u] = struct{}{}
	}

	// Configured participants first, in configuration order.
	matched := 0
	for _, p := range reg.List() {
		if _, ok := picked[p.Name]; !ok {
			continue
		}
		day.Selections = append(day.Selections, Selection{UserName: p.Name, Color: p.Color, TextColor: p.TextColor})
		delete(picked, p.Name)
		matched++
	}
	// Names no longer configured still show, in the fallback colour.
	for _, u := range users {
		if _, ok := picked[u]; ok {
			day.Selections = append(day.Selections, Selection{UserName: u, Color: reg.ColorOf(u), TextColor: reg.TextColorOf(u)})
		}
	}

	day.Everyone = reg.Len() > 0 && matched == reg.Len()
	return day
}

func leadingDays(wd time.Weekday, mondayFirst bool) int {
	n := int(wd)
	if mondayFirst {
		n = (n + 6) % 7
	}
	return n
}

func weekdayHeaders(mondayFirst bool) []string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if mondayFirst {
		return append(names[1:], names[0])
	}
	return names
}
