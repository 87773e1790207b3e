package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default values
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stderr"

	DefaultHolidayCalendar = HolidayCalendarFederal
	DefaultMonthArithmetic = MonthArithmeticCalendar
	DefaultLienDays        = 90
	DefaultTimezone        = "UTC"
	DefaultCriticalDays    = 7
	DefaultWarningDays     = 30

	DefaultBatchMaxItems = 10000

	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "liendeadline"
)

// DefaultBatchConcurrency is one worker per CPU.
var DefaultBatchConcurrency = runtime.GOMAXPROCS(0)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-value fields.  Explicit values win.  The urgency
// thresholds are defaulted only when both are zero, so an explicit
// critical_days of 0 survives.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	if cfg.Engine.HolidayCalendar == "" {
		cfg.Engine.HolidayCalendar = DefaultHolidayCalendar
	}
	if cfg.Engine.MonthArithmetic == "" {
		cfg.Engine.MonthArithmetic = DefaultMonthArithmetic
	}
	if cfg.Engine.DefaultLienDays == 0 {
		cfg.Engine.DefaultLienDays = DefaultLienDays
	}
	if cfg.Engine.Timezone == "" {
		cfg.Engine.Timezone = DefaultTimezone
	}
	if cfg.Engine.Urgency.CriticalDays == 0 && cfg.Engine.Urgency.WarningDays == 0 {
		cfg.Engine.Urgency.CriticalDays = DefaultCriticalDays
		cfg.Engine.Urgency.WarningDays = DefaultWarningDays
	}

	// ── Batch ─────────────────────────────────────────────────────────────────
	if cfg.Batch.Concurrency == 0 {
		cfg.Batch.Concurrency = DefaultBatchConcurrency
	}
	if cfg.Batch.MaxItems == 0 {
		cfg.Batch.MaxItems = DefaultBatchMaxItems
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// setViperDefaults registers every key with viper so that LIEN_* variables
// override keys that appear in no file.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output", DefaultLogOutput)

	v.SetDefault("engine.holiday_calendar", DefaultHolidayCalendar)
	v.SetDefault("engine.month_arithmetic", DefaultMonthArithmetic)
	v.SetDefault("engine.default_lien_days", DefaultLienDays)
	v.SetDefault("engine.timezone", DefaultTimezone)
	v.SetDefault("engine.catalog_path", "")
	v.SetDefault("engine.urgency.critical_days", DefaultCriticalDays)
	v.SetDefault("engine.urgency.warning_days", DefaultWarningDays)
	v.SetDefault("engine.disclaimer", "")

	v.SetDefault("batch.concurrency", DefaultBatchConcurrency)
	v.SetDefault("batch.max_items", DefaultBatchMaxItems)

	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
}
