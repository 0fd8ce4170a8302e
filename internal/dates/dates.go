// Package dates works with ISO calendar dates (YYYY-MM-DD) in a single,
// injectable timezone.
package dates

import (
	"fmt"
	"time"
)

// Layout is the ISO calendar-date layout used for every date string.
const Layout = "2006-01-02"

// Clock returns the current wall-clock time. The location of the returned
// time decides which calendar day "today" is.
type Clock func() time.Time

// SystemClock returns a clock reading the system time in loc.
// A nil loc means time.Local.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Format returns the calendar date of t in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a calendar date as midnight in loc.
func Parse(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}

// AddDays shifts a calendar date by n days. Unparseable input is returned
// unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// Today returns the current calendar date according to clock.
func Today(clock Clock) string {
	return Format(clock())
}

// Yesterday returns the calendar date before Today.
func Yesterday(clock Clock) string {
	return AddDays(Today(clock), -1)
}

// DayOfMonth returns the day-of-month of a calendar date, or 0 when the date
// cannot be parsed.
func DayOfMonth(date string) int {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return 0
	}
	return t.Day()
}

// Weekday returns the day of the week of a calendar date. Unparseable input
// reports Sunday.
func Weekday(date string) time.Weekday {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// FirstOfMonth returns the first day of the month n months after the month
// of date.
func FirstOfMonth(date string, n int) string {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return date
	}
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC).Format(Layout)
}

// SameMonth reports whether two calendar dates fall in the same month.
func SameMonth(a, b string) bool {
	return len(a) >= 7 && len(b) >= 7 && a[:7] == b[:7]
}
