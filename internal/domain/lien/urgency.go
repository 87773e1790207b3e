package lien

import (
	"fmt"
	"time"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// Urgency is a display tier derived from the days left before a deadline.
// It plays no part in the legal computation.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
)

// UrgencyThresholds bound the critical and warning tiers, in days.  A deadline
// at or under CriticalDays away (including one already past) is critical.
type UrgencyThresholds struct {
	CriticalDays int
	WarningDays  int
}

// DefaultThresholds are 7 and 30 days.
var DefaultThresholds = UrgencyThresholds{CriticalDays: 7, WarningDays: 30}

// Validate checks 0 <= CriticalDays <= WarningDays.
func (t UrgencyThresholds) Validate() error {
	if t.CriticalDays < 0 || t.WarningDays < t.CriticalDays {
		return errors.InvalidParam(fmt.Sprintf("urgency thresholds must satisfy 0 <= critical (%d) <= warning (%d)",
			t.CriticalDays, t.WarningDays))
	}
	return nil
}

// Classify maps the days between today and deadline to a tier.  today is
// always supplied by the caller.
func (t UrgencyThresholds) Classify(deadline, today time.Time) Urgency {
	return t.tier(calendar.DaysBetween(today, deadline))
}

func (t UrgencyThresholds) tier(days int) Urgency {
	switch {
	case days <= t.CriticalDays:
		return UrgencyCritical
	case days <= t.WarningDays:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// Classify uses DefaultThresholds.
func Classify(deadline, today time.Time) Urgency {
	return DefaultThresholds.Classify(deadline, today)
}
