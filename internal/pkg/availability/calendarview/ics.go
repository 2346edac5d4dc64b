package calendarview

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

const icsDateLayout = "20060102"

// ExportOptions controls the generated calendar.
type ExportOptions struct {
	ProductID string
	Name      string
	// Summary is the VEVENT title; "%s" is replaced by the date's medium form.
	Summary string
	// UIDPrefix keeps UIDs stable across exports so subscribers update in place.
	UIDPrefix string
	Now       time.Time
}

// ExportICS writes one all-day VEVENT per date.
func ExportICS(w io.Writer, dates []caldate.Date, opts ExportOptions) error {
	if opts.ProductID == "" {
		opts.ProductID = "-//huddleuptime//availability//EN"
	}
	if opts.Summary == "" {
		opts.Summary = "Available"
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	if opts.Name != "" {
		cal.SetName(opts.Name)
		cal.SetXWRCalName(opts.Name)
	}

	for _, d := range dates {
		ev := cal.AddEvent(fmt.Sprintf("%s%s@huddleuptime", opts.UIDPrefix, d.String()))
		ev.SetDtStampTime(opts.Now.UTC())
		ev.SetAllDayStartAt(d.Time())
		ev.SetAllDayEndAt(d.AddDays(1).Time())
		summary := opts.Summary
		if strings.Contains(summary, "%s") {
			summary = fmt.Sprintf(summary, caldate.FormatDate(d, caldate.StyleMedium))
		}
		ev.SetSummary(summary)
		ev.SetProperty(ical.ComponentPropertyTransp, "TRANSPARENT")
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// ErrNoEvents is returned when an import finds nothing usable.
var ErrNoEvents = errors.New("calendarview: no events in calendar")

// ImportICS reads a calendar and returns every day within r covered by one
// of its events, ascending and de-duplicated. Multi-day events cover each
// day; recurring events are expanded inside r. Events that cannot be read
// are skipped.
func ImportICS(rd io.Reader, r caldate.Range) ([]caldate.Date, error) {
	cal, err := ical.ParseCalendar(rd)
	if err != nil {
		return nil, fmt.Errorf("calendarview: parse ics: %w", err)
	}
	events := cal.Events()
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	seen := make(map[caldate.Date]struct{})
	for _, ve := range events {
		days, err := eventDays(ve, r)
		if err != nil {
			uid := ""
			if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
				uid = p.Value
			}
			appLog.Warn("ics import: skipping event", "uid", uid, "err", err)
			continue
		}
		for _, d := range days {
			if r.Contains(d) {
				seen[d] = struct{}{}
			}
		}
	}

	out := make([]caldate.Date, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	slices.SortFunc(out, caldate.Date.Compare)
	return out, nil
}

// eventDays lists the calendar days one VEVENT occupies.
func eventDays(ve *ical.VEvent, r caldate.Range) ([]caldate.Date, error) {
	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil || startProp.Value == "" {
		return nil, errors.New("missing DTSTART")
	}

	var (
		start time.Time
		span  int // days occupied per occurrence
	)
	if isAllDay(startProp) {
		s, err := time.ParseInLocation(icsDateLayout, startProp.Value[:min(8, len(startProp.Value))], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("DTSTART: %w", err)
		}
		start = s
		span = 1
		if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil && len(endProp.Value) >= 8 {
			if e, err := time.ParseInLocation(icsDateLayout, endProp.Value[:8], time.UTC); err == nil && e.After(s) {
				span = int(e.Sub(s).Hours() / 24)
			}
		}
	} else {
		s, err := ve.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("DTSTART: %w", err)
		}
		start = s
		span = 1
		if e, err := ve.GetEndAt(); err == nil && e.After(s) {
			first := caldate.FromTime(s)
			last := caldate.FromTime(e.Add(-time.Nanosecond))
			span = int(last.Time().Sub(first.Time()).Hours()/24) + 1
		}
	}

	lo, hi := r.StartDate(), r.EndDate()
	if limit := daysBetween(lo, hi) + 2; span > limit {
		return nil, fmt.Errorf("event spans %d days, longer than the %d-day range", span, limit-1)
	}

	starts := []time.Time{start}
	if rp := ve.GetProperty(ical.ComponentPropertyRrule); rp != nil && rp.Value != "" {
		expanded, err := expand(rp.Value, start, exdates(ve, start.Location()), r, span)
		if err != nil {
			return nil, err
		}
		starts = expanded
	}

	// Occurrences are ascending; next is the first day not yet emitted, so
	// each day in r is visited at most once per event.
	var days []caldate.Date
	next := lo
	for _, s := range starts {
		first := caldate.FromTime(s)
		last := first.AddDays(span - 1)
		if first.Before(next) {
			first = next
		}
		if last.After(hi) {
			last = hi
		}
		for d := first; !d.After(last); d = d.AddDays(1) {
			days = append(days, d)
		}
		if !last.Before(next) {
			next = last.AddDays(1)
		}
	}
	return days, nil
}

func daysBetween(a, b caldate.Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

func expand(raw string, start time.Time, ex []time.Time, r caldate.Range, span int) ([]time.Time, error) {
	rule, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("RRULE: %w", err)
	}
	// Availability is per day; finer frequencies only add occurrences.
	if rule.OrigOptions.Freq > rrule.DAILY {
		return nil, fmt.Errorf("RRULE: unsupported frequency %v", rule.OrigOptions.Freq)
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)
	for _, t := range ex {
		set.ExDate(t)
	}

	loc := start.Location()
	// Occurrences that start before the range may still spill into it.
	from := r.StartDate().AddDays(-span)
	to := r.EndDate().AddDays(1)
	lo := time.Date(from.Year, from.Month, from.Day, 0, 0, 0, 0, loc)
	hi := time.Date(to.Year, to.Month, to.Day, 0, 0, 0, 0, loc)
	return set.Between(lo, hi, true), nil
}

func exdates(ve *ical.VEvent, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		allDay := isAllDay(p)
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, ok := parseICSTime(part, allDay, loc); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

func parseICSTime(v string, allDay bool, loc *time.Location) (time.Time, bool) {
	var (
		t   time.Time
		err error
	)
	switch {
	case allDay || !strings.Contains(v, "T"):
		t, err = time.ParseInLocation(icsDateLayout, v, loc)
	case strings.HasSuffix(v, "Z"):
		t, err = time.Parse("20060102T150405Z", v)
		t = t.In(loc)
	default:
		t, err = time.ParseInLocation("20060102T150405", v, loc)
	}
	return t, err == nil
}

func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
