package calculation

import (
	"time"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
)

// Clock supplies the reference date for urgency and days remaining.
type Clock interface {
	// Today returns the current civil date at midnight UTC.
	Today() time.Time
}

// SystemClock reads the wall clock in Location.  A nil Location means UTC.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return calendar.DateOf(time.Now().In(loc))
}

// FixedClock always returns the same date.  Used by tests and --today.
type FixedClock struct {
	Date time.Time
}

func (c FixedClock) Today() time.Time { return calendar.DateOf(c.Date) }
