// Package config defines the configuration of the lien deadline service and
// its validation.  Loading lives in loader.go.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sections
// ─────────────────────────────────────────────────────────────────────────────

// Holiday calendar selections.
const (
	HolidayCalendarFederal = "federal"
	HolidayCalendarNone    = "none"
)

// Month arithmetic selections.
const (
	MonthArithmeticCalendar    = "calendar"
	MonthArithmeticApproximate = "approximate"
)

// UrgencyConfig bounds the urgency tiers, in days.
type UrgencyConfig struct {
	CriticalDays int `mapstructure:"critical_days"`
	WarningDays  int `mapstructure:"warning_days"`
}

// EngineConfig selects the engine's capabilities and policy values.
type EngineConfig struct {
	HolidayCalendar string        `mapstructure:"holiday_calendar"` // "federal" | "none"
	MonthArithmetic string        `mapstructure:"month_arithmetic"` // "calendar" | "approximate"
	DefaultLienDays int           `mapstructure:"default_lien_days"`
	Timezone        string        `mapstructure:"timezone"` // IANA name used to derive "today"
	CatalogPath     string        `mapstructure:"catalog_path"`
	Urgency         UrgencyConfig `mapstructure:"urgency"`
	Disclaimer      string        `mapstructure:"disclaimer"`
}

// Location resolves Timezone.
func (e EngineConfig) Location() (*time.Location, error) {
	if e.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(e.Timezone)
}

// BatchConfig bounds batch evaluation.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxItems    int `mapstructure:"max_items"`
}

// MetricsConfig controls the in-process metrics registry.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration.
type Config struct {
	Log     logging.LogConfig `mapstructure:"log"`
	Engine  EngineConfig      `mapstructure:"engine"`
	Batch   BatchConfig       `mapstructure:"batch"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

func invalid(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrCodeConfigInvalid, "config: "+format, args...)
}

// Validate checks a defaulted Config.  The first problem is returned.
func (c *Config) Validate() error {
	// Log
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return invalid("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Engine
	switch c.Engine.HolidayCalendar {
	case HolidayCalendarFederal, HolidayCalendarNone:
	default:
		return invalid("engine.holiday_calendar %q is invalid; expected federal|none", c.Engine.HolidayCalendar)
	}
	switch c.Engine.MonthArithmetic {
	case MonthArithmeticCalendar, MonthArithmeticApproximate:
	default:
		return invalid("engine.month_arithmetic %q is invalid; expected calendar|approximate", c.Engine.MonthArithmetic)
	}
	if c.Engine.DefaultLienDays < 1 || c.Engine.DefaultLienDays > 730 {
		return invalid("engine.default_lien_days must be in [1, 730], got %d", c.Engine.DefaultLienDays)
	}
	if _, err := c.Engine.Location(); err != nil {
		return invalid("engine.timezone %q: %v", c.Engine.Timezone, err)
	}
	u := c.Engine.Urgency
	if u.CriticalDays < 0 || u.WarningDays < u.CriticalDays {
		return invalid("engine.urgency must satisfy 0 <= critical_days (%d) <= warning_days (%d)",
			u.CriticalDays, u.WarningDays)
	}

	// Batch
	if c.Batch.Concurrency < 1 {
		return invalid("batch.concurrency must be >= 1, got %d", c.Batch.Concurrency)
	}
	if c.Batch.MaxItems < 1 {
		return invalid("batch.max_items must be >= 1, got %d", c.Batch.MaxItems)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return invalid("metrics.namespace is required when metrics are enabled")
	}
	return nil
}

// String summarises the effective settings for start-up logging.
func (c *Config) String() string {
	return fmt.Sprintf("log=%s/%s holidays=%s months=%s default_lien_days=%d tz=%s catalog=%q batch=%d metrics=%t",
		c.Log.Level, c.Log.Format, c.Engine.HolidayCalendar, c.Engine.MonthArithmetic,
		c.Engine.DefaultLienDays, c.Engine.Timezone, c.Engine.CatalogPath, c.Batch.Concurrency, c.Metrics.Enabled)
}
