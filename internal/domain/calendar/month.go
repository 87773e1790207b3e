package calendar

import "time"

// MonthArithmeticProvider computes "day D of the month M months after start".
type MonthArithmeticProvider interface {
	// MonthDay returns the date whose month is start's month plus months and
	// whose day-of-month is day.
	MonthDay(start time.Time, months, day int) time.Time

	// Exact is false for providers that approximate month lengths.
	Exact() bool

	// Name identifies the provider in results and logs.
	Name() string
}

// CalendarMonths is exact Gregorian month arithmetic.  A day past the end of
// the target month clamps to the month's last day (day 31 in April yields
// April 30); it never rolls into the following month.
type CalendarMonths struct{}

// MonthDay implements MonthArithmeticProvider.
func (CalendarMonths) MonthDay(start time.Time, months, day int) time.Time {
	y, m, _ := start.Date()
	// Month index from year 0 avoids AddDate's overflow normalization
	// (Jan 31 + 1 month would otherwise become Mar 3).
	idx := y*12 + int(m-1) + months
	ty, tm := idx/12, time.Month(idx%12+1)
	if last := DaysIn(ty, tm); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return NewDate(ty, tm, day)
}

// Exact implements MonthArithmeticProvider.
func (CalendarMonths) Exact() bool { return true }

// Name implements MonthArithmeticProvider.
func (CalendarMonths) Name() string { return "calendar" }

// ApproximateMonths is the degraded provider: it treats a month as 30 days
// from the start date and ignores the requested day-of-month.
type ApproximateMonths struct{}

// MonthDay implements MonthArithmeticProvider.
func (ApproximateMonths) MonthDay(start time.Time, months, _ int) time.Time {
	return AddDays(start, months*30)
}

// Exact implements MonthArithmeticProvider.
func (ApproximateMonths) Exact() bool { return false }

// Name implements MonthArithmeticProvider.
func (ApproximateMonths) Name() string { return "approximate" }
