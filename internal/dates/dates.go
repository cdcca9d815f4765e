// Package dates provides calendar-day helpers for habit history.
package dates

import (
	"fmt"
	"time"
)

// Layout is the calendar-date format used for Day records.
const Layout = "2006-01-02"

// Now returns the current time. Tests replace it to pin the clock.
var Now = time.Now

// Today returns the current UTC date as YYYY-MM-DD.
func Today() string {
	return Format(Now())
}

// Format truncates t to its UTC calendar day and formats it as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse parses a YYYY-MM-DD date as midnight UTC.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// AddDays returns the date n days after (or before, if negative) the given date.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// LastN returns n consecutive dates ending at end, oldest first.
func LastN(end string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	t, err := Parse(end)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = Format(t.AddDate(0, 0, i-n+1))
	}
	return out, nil
}

// DaysBetween returns the number of whole days from a to b (negative if b is before a).
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
