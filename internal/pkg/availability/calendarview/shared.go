package calendarview

import (
	"slices"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// SharedDates returns the days in r that every configured participant
// selected, ascending. An empty roster shares nothing.
func SharedDates(records []availability.Record, reg *roster.Registry, r caldate.Range) []caldate.Date {
	out := make([]caldate.Date, 0)
	for _, c := range Tally(records, reg, r) {
		if c.Everyone {
			out = append(out, c.Date)
		}
	}
	return out
}

// DateCount is how many configured participants are free on Date.
type DateCount struct {
	Date     caldate.Date `json:"date"`
	Count    int          `json:"count"`
	Users    []string     `json:"users"`
	Everyone bool         `json:"everyone"`
}

// Tally counts configured participants per day in r, ascending by date.
// Records for names that are not configured are ignored.
func Tally(records []availability.Record, reg *roster.Registry, r caldate.Range) []DateCount {
	idx := availability.NewIndex(records)
	out := make([]DateCount, 0)
	for _, d := range idx.Dates() {
		if !r.Contains(d) {
			continue
		}
		users := make([]string, 0)
		for _, u := range idx.UsersOn(d) {
			if reg.Has(u) {
				users = append(users, u)
			}
		}
		if len(users) == 0 {
			continue
		}
		out = append(out, DateCount{
			Date:     d,
			Count:    len(users),
			Users:    users,
			Everyone: reg.Len() > 0 && len(users) == reg.Len(),
		})
	}
	return out
}

// BestDates returns the days with at least minCount participants, most
// popular first, earliest first among equals.
func BestDates(records []availability.Record, reg *roster.Registry, r caldate.Range, minCount int) []DateCount {
	all := Tally(records, reg, r)
	out := slices.DeleteFunc(all, func(c DateCount) bool { return c.Count < minCount })
	slices.SortStableFunc(out, func(a, b DateCount) int { return b.Count - a.Count })
	return out
}
