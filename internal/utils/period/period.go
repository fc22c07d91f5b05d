// Package period provides calendar-month window helpers for summary queries.
package period

import "time"

// StartOfMonth returns midnight on the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PreviousMonthRange returns the inclusive window covering the calendar month
// before t's month: midnight on its first day through 23:59:59 on its last day.
func PreviousMonthRange(t time.Time) (time.Time, time.Time) {
	firstOfCurrent := StartOfMonth(t)
	start := firstOfCurrent.AddDate(0, -1, 0)
	end := firstOfCurrent.Add(-time.Second)
	return start, end
}
