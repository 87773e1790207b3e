// Package calendar implements the date arithmetic the deadline engine relies
// on: business-day tests and counting, roll-forward to the next business day,
// and "Nth day of the Mth month" formulas with end-of-month clamping.
//
// All dates are civil dates carried as time.Time at midnight UTC.  Every
// function normalizes its inputs, so callers may pass any instant; only the
// year, month and day are significant.
package calendar

import (
	"time"
)

// ISODateLayout is the wire format for calendar dates.
const ISODateLayout = "2006-01-02"

// Day is a calendar day as a duration, for readability at call sites.
const Day = 24 * time.Hour

// DateOf truncates t to its civil date at midnight UTC.  The civil date is
// read in t's own location, so 2025-01-15T23:30-08:00 stays on the 15th.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a civil date.  Out-of-range values normalize the way
// time.Date does.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).  A full RFC 3339
// timestamp is also accepted; its civil date is kept.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(ISODateLayout, s)
	if err == nil {
		return d, nil
	}
	ts, tsErr := time.Parse(time.RFC3339, s)
	if tsErr != nil {
		return time.Time{}, err
	}
	return DateOf(ts), nil
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return DateOf(t).Format(ISODateLayout)
}

// DaysBetween returns the number of calendar days from a to b.  The result is
// negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / Day)
}

// AddDays adds n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
