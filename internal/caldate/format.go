package caldate

import "time"

// Style selects a display format.
type Style string

const (
	StyleShort  Style = "short"  // Oct 5
	StyleMedium Style = "medium" // Oct 5, 2025
	StyleLong   Style = "long"   // Sunday, October 5, 2025
)

var layouts = map[Style]string{
	StyleShort:  "Jan 2",
	StyleMedium: "Jan 2, 2006",
	StyleLong:   "Monday, January 2, 2006",
}

// Format renders the canonical date s in style. Unknown styles use medium.
func Format(s string, style Style) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return FormatDate(d, style), nil
}

// FormatDate renders d in style. Unknown styles use medium.
func FormatDate(d Date, style Style) string {
	layout, ok := layouts[style]
	if !ok {
		layout = layouts[StyleMedium]
	}
	return d.Time().Format(layout)
}

// MonthName returns the full English name of month 1-12, or "".
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// ShortMonthName returns the three-letter English name of month 1-12, or "".
func ShortMonthName(month int) string {
	name := MonthName(month)
	if name == "" {
		return ""
	}
	return name[:3]
}
