// Package dates handles the calendar-day strings (YYYY-MM-DD) used by habit
// logs, tasks and transactions. Days are represented as midnight UTC so that
// day arithmetic never crosses a DST boundary.
package dates

import (
	"math"
	"time"
)

// Layout is the wire and storage format of a calendar day.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD string into midnight UTC of that day.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// IsValid reports whether s is a well-formed calendar day.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders the calendar day of t, taken in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Day returns midnight UTC of the calendar day t falls on in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today formats the calendar day of now.
func Today(now time.Time) string {
	return Format(Day(now))
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day time.Time) time.Time {
	day = Day(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDates lists the seven days starting at start.
func WeekDates(start time.Time) []string {
	start = Day(start)
	out := make([]string, 7)
	for i := range out {
		out[i] = Format(start.AddDate(0, 0, i))
	}
	return out
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	_, last := MonthBounds(year, month)
	return last.Day()
}

// InRange reports whether day lies in [from, to]. Empty bounds are open.
// YYYY-MM-DD strings order lexically, so no parsing is needed.
func InRange(day, from, to string) bool {
	if from != "" && day < from {
		return false
	}
	if to != "" && day > to {
		return false
	}
	return true
}

// Percent returns done/target as a whole percentage capped at 100.
func Percent(done, target int) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(done) / float64(target) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
