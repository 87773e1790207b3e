package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// HolidayCalendarProvider answers whether a date is a recognized holiday.
// Whether one is wired in is a configuration decision, not a runtime probe:
// a provider that cannot recognize holidays says so through Available so
// callers can flag their results.
type HolidayCalendarProvider interface {
	// HolidayOn reports whether date is a holiday and returns its name.
	HolidayOn(date time.Time) (name string, ok bool)

	// Available is false when the provider cannot recognize holidays and
	// business-day checks degrade to weekend-only exclusion.
	Available() bool

	// Name identifies the provider in results and logs.
	Name() string
}

// ─────────────────────────────────────────────────────────────────────────────
// US federal holidays
// ─────────────────────────────────────────────────────────────────────────────

// FederalHolidays recognizes the US federal holidays.  Dates are computed per
// calendar year (floating Monday holidays, observed weekday for fixed-date
// holidays falling on a weekend), never taken from a hard-coded list.
type FederalHolidays struct {
	cal *cal.Calendar
}

// NewFederalHolidays returns a provider for the US federal holiday set.
func NewFederalHolidays() *FederalHolidays {
	c := &cal.Calendar{}
	c.AddHoliday(us.Holidays...)
	return &FederalHolidays{cal: c}
}

// HolidayOn reports both the actual and the observed date of a holiday.
func (f *FederalHolidays) HolidayOn(date time.Time) (string, bool) {
	actual, observed, h := f.cal.IsHoliday(DateOf(date))
	if (actual || observed) && h != nil {
		return h.Name, true
	}
	return "", false
}

// Available always holds for the federal calendar.
func (f *FederalHolidays) Available() bool { return true }

// Name implements HolidayCalendarProvider.
func (f *FederalHolidays) Name() string { return "us-federal" }

// ─────────────────────────────────────────────────────────────────────────────
// Weekend-only fallback
// ─────────────────────────────────────────────────────────────────────────────

// WeekendOnly is the degraded provider: it knows no holidays.
type WeekendOnly struct{}

// HolidayOn never reports a holiday.
func (WeekendOnly) HolidayOn(time.Time) (string, bool) { return "", false }

// Available is false; results computed with this provider are flagged.
func (WeekendOnly) Available() bool { return false }

// Name implements HolidayCalendarProvider.
func (WeekendOnly) Name() string { return "weekend-only" }
