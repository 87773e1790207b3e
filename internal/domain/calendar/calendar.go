package calendar

import "time"

// ExtensionPolicy selects which non-business days push a deadline forward.
type ExtensionPolicy struct {
	Weekends bool
	Holidays bool
}

// FullExtension rolls past both weekends and holidays.
var FullExtension = ExtensionPolicy{Weekends: true, Holidays: true}

// Any reports whether the policy extends at all.
func (p ExtensionPolicy) Any() bool { return p.Weekends || p.Holidays }

// Calendar bundles the injected holiday and month-arithmetic capabilities.
// It holds no mutable state and is safe for concurrent use.
type Calendar struct {
	holidays HolidayCalendarProvider
	months   MonthArithmeticProvider
}

// New builds a Calendar.  A nil holiday provider means no holiday calendar is
// configured and business-day checks exclude weekends only; HolidaysDegraded
// then reports true.  A nil month provider selects exact calendar months.
func New(holidays HolidayCalendarProvider, months MonthArithmeticProvider) *Calendar {
	if holidays == nil {
		holidays = WeekendOnly{}
	}
	if months == nil {
		months = CalendarMonths{}
	}
	return &Calendar{holidays: holidays, months: months}
}

// NewFederal is the production calendar: US federal holidays and exact months.
func NewFederal() *Calendar {
	return New(NewFederalHolidays(), CalendarMonths{})
}

// HolidaysDegraded reports whether holiday exclusion is unavailable.
func (c *Calendar) HolidaysDegraded() bool { return !c.holidays.Available() }

// MonthsDegraded reports whether month arithmetic is approximate.
func (c *Calendar) MonthsDegraded() bool { return !c.months.Exact() }

// HolidayProvider returns the configured holiday provider's name.
func (c *Calendar) HolidayProvider() string { return c.holidays.Name() }

// MonthProvider returns the configured month provider's name.
func (c *Calendar) MonthProvider() string { return c.months.Name() }

// HolidayName returns the holiday falling on d, if any.
func (c *Calendar) HolidayName(d time.Time) (string, bool) {
	return c.holidays.HolidayOn(DateOf(d))
}

// IsBusinessDay is false on Saturdays, Sundays and recognized holidays.
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	if IsWeekend(d) {
		return false
	}
	_, holiday := c.holidays.HolidayOn(DateOf(d))
	return !holiday
}

// AddBusinessDays walks forward one calendar day at a time from start,
// counting only business days, and returns the date of the nth.  n <= 0
// returns start.
func (c *Calendar) AddBusinessDays(start time.Time, n int) time.Time {
	d := DateOf(start)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if c.IsBusinessDay(d) {
			counted++
		}
	}
	return d
}

// NextBusinessDay returns d when it is a business day, otherwise the first
// business day after it.
func (c *Calendar) NextBusinessDay(d time.Time) time.Time {
	return c.Extend(d, FullExtension)
}

// Extend rolls d forward past the kinds of non-business day the policy names.
// An empty policy returns d unchanged.
func (c *Calendar) Extend(d time.Time, policy ExtensionPolicy) time.Time {
	d = DateOf(d)
	if !policy.Any() {
		return d
	}
	for c.blocked(d, policy) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func (c *Calendar) blocked(d time.Time, policy ExtensionPolicy) bool {
	if policy.Weekends && IsWeekend(d) {
		return true
	}
	if policy.Holidays {
		if _, ok := c.holidays.HolidayOn(d); ok {
			return true
		}
	}
	return false
}

// MonthPlusDay adds months calendar months to start and sets the day of month
// to day, clamping to the target month's last day.  With extendForWeekend the
// result is rolled to the next business day.
func (c *Calendar) MonthPlusDay(start time.Time, months, day int, extendForWeekend bool) time.Time {
	d := c.months.MonthDay(DateOf(start), months, day)
	if extendForWeekend {
		return c.NextBusinessDay(d)
	}
	return d
}
