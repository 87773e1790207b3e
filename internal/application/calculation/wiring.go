package calculation

import (
	"github.com/turtacn/LienDeadline/internal/config"
	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/domain/jurisdiction"
	"github.com/turtacn/LienDeadline/internal/domain/lien"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
)

// NewCalendar selects the calendar capabilities named by cfg.
func NewCalendar(cfg config.EngineConfig) *calendar.Calendar {
	var holidays calendar.HolidayCalendarProvider = calendar.WeekendOnly{}
	if cfg.HolidayCalendar == config.HolidayCalendarFederal {
		holidays = calendar.NewFederalHolidays()
	}
	var months calendar.MonthArithmeticProvider = calendar.CalendarMonths{}
	if cfg.MonthArithmetic == config.MonthArithmeticApproximate {
		months = calendar.ApproximateMonths{}
	}
	return calendar.New(holidays, months)
}

// LoadTable reads the catalog at cfg.CatalogPath, or the embedded catalog
// when no path is set.
func LoadTable(cfg config.EngineConfig) (*jurisdiction.Table, error) {
	if cfg.CatalogPath != "" {
		return jurisdiction.LoadTableFile(cfg.CatalogPath)
	}
	return jurisdiction.DefaultTable()
}

// NewEngine builds the rule table, calendar and engine from cfg.
func NewEngine(cfg config.EngineConfig, logger logging.Logger) (*lien.Engine, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	table, err := LoadTable(cfg)
	if err != nil {
		return nil, err
	}
	cal := NewCalendar(cfg)

	var opts []lien.Option
	if u := cfg.Urgency; u != (config.UrgencyConfig{}) {
		opts = append(opts, lien.WithThresholds(lien.UrgencyThresholds{
			CriticalDays: u.CriticalDays,
			WarningDays:  u.WarningDays,
		}))
	}
	if cfg.DefaultLienDays > 0 {
		opts = append(opts, lien.WithDefaultLienDays(cfg.DefaultLienDays))
	}
	if cfg.Disclaimer != "" {
		opts = append(opts, lien.WithDisclaimer(cfg.Disclaimer))
	}
	engine, err := lien.NewEngine(table, cal, opts...)
	if err != nil {
		return nil, err
	}

	fields := []logging.Field{
		logging.Int("jurisdictions", table.Len()),
		logging.String("holiday_calendar", cal.HolidayProvider()),
		logging.String("month_arithmetic", cal.MonthProvider()),
	}
	if cal.HolidaysDegraded() || cal.MonthsDegraded() {
		logger.Warn("engine running with degraded calendar capabilities", fields...)
	} else {
		logger.Debug("engine ready", fields...)
	}
	return engine, nil
}
