// Package dates holds calendar arithmetic shared by the recurrence and
// projection services.
package dates

import "time"

// AddMonthsClamped adds n calendar months to t, clamping the day-of-month to
// the last valid day of the target month. Jan 31 + 1 month is the last day of
// February, never a rollover into March. time.Time.AddDate rolls over instead
// of clamping, so it must not be used for due-date arithmetic.
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// First of the target month, then clamp the day.
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := DaysInMonth(first.Year(), first.Month())
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDayUTC truncates t to UTC midnight. Day-level bucketing is always
// done against this single reference so that transactions stored with
// different clock times land in the same bucket.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
