package availability

import (
	"slices"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
)

// Index groups records by calendar day. Conflicting updates to the same
// (user, date) resolve by last write wins on UpdatedAt.
type Index struct {
	byDate map[caldate.Date]map[string]Record
}

func NewIndex(records []Record) *Index {
	idx := &Index{byDate: make(map[caldate.Date]map[string]Record)}
	for _, r := range records {
		idx.Put(r)
	}
	return idx
}

// Put stores r unless a newer record for the same key is already present.
func (x *Index) Put(r Record) {
	users := x.byDate[r.Date]
	if users == nil {
		users = make(map[string]Record)
		x.byDate[r.Date] = users
	}
	if cur, ok := users[r.UserName]; ok && cur.UpdatedAt.After(r.UpdatedAt) {
		return
	}
	users[r.UserName] = r
}

// Remove drops the record for r's key unless the stored one is newer.
func (x *Index) Remove(r Record) {
	users := x.byDate[r.Date]
	if users == nil {
		return
	}
	if cur, ok := users[r.UserName]; ok {
		if !r.UpdatedAt.IsZero() && cur.UpdatedAt.After(r.UpdatedAt) {
			return
		}
		delete(users, r.UserName)
	}
	if len(users) == 0 {
		delete(x.byDate, r.Date)
	}
}

// Apply folds a change event into the index.
func (x *Index) Apply(ev ChangeEvent) {
	switch ev.Type {
	case ChangeInsert:
		if ev.New != nil {
			x.Put(*ev.New)
		}
	case ChangeUpdate:
		if ev.Old != nil && ev.New != nil && ev.Old.Key() != ev.New.Key() {
			x.Remove(*ev.Old)
		}
		if ev.New != nil {
			x.Put(*ev.New)
		}
	case ChangeDelete:
		if ev.Old != nil {
			x.Remove(*ev.Old)
		}
	}
}

// UsersOn returns the names available on d, sorted.
func (x *Index) UsersOn(d caldate.Date) []string {
	users := x.byDate[d]
	out := make([]string, 0, len(users))
	for name := range users {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (x *Index) Has(userName string, d caldate.Date) bool {
	_, ok := x.byDate[d][userName]
	return ok
}

// Dates returns every day with at least one record, ascending.
func (x *Index) Dates() []caldate.Date {
	out := make([]caldate.Date, 0, len(x.byDate))
	for d := range x.byDate {
		out = append(out, d)
	}
	slices.SortFunc(out, caldate.Date.Compare)
	return out
}

// Records flattens the index in date, user order.
func (x *Index) Records() []Record {
	out := make([]Record, 0)
	for _, d := range x.Dates() {
		for _, name := range x.UsersOn(d) {
			out = append(out, x.byDate[d][name])
		}
	}
	return out
}
