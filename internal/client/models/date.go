package models

import "time"

// Date fields on education and experience records are kept at month
// precision. The backend wants full dates, so values are expanded to the
// first of the month on the way out and collapsed back for display.

const (
	monthLayout = "2006-01"
	wireLayout  = "2006-01-02"
)

// NormalizeMonth coerces a date string to canonical "YYYY-MM" form.
// Accepts "YYYY-MM" and "YYYY-MM-DD" inputs. Anything unparsable,
// including the empty string, yields "".
func NormalizeMonth(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(monthLayout, s); err == nil {
		return t.Format(monthLayout)
	}
	if t, err := time.Parse(wireLayout, s); err == nil {
		return t.Format(monthLayout)
	}
	return ""
}

// ExpandMonth converts a month-precision date to the "YYYY-MM-DD" form the
// backend expects, pinned to the first of the month. Unparsable input
// yields "".
func ExpandMonth(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(monthLayout, s); err == nil {
		return t.Format(wireLayout)
	}
	if t, err := time.Parse(wireLayout, s); err == nil {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(wireLayout)
	}
	return ""
}
