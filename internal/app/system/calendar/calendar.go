// Package calendar computes the date windows used by monthly aggregations.
package calendar

import "time"

// MonthRange returns the first and last instants of now's calendar month in
// now's location: [1st 00:00:00.000, last day 23:59:59.999]. Both ends are
// inclusive; query with $gte/$lte.
func MonthRange(now time.Time) (start, end time.Time) {
	y, m, _ := now.Date()
	loc := now.Location()
	start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	// Day 0 of the next month is the last day of this one.
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc)
	end = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// InRange reports whether t lies within [start, end] inclusive.
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
