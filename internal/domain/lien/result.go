package lien

import (
	"encoding/json"
	"time"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
)

// DefaultDisclaimer is attached to every successful result.
const DefaultDisclaimer = "This calculation is informational only and is not legal advice. " +
	"Lien deadlines depend on facts and filings not captured here; confirm every date with " +
	"a licensed attorney in the project's jurisdiction before relying on it."

// NoticeKind identifies the notice a deadline belongs to.
type NoticeKind string

const (
	NoticePreliminary NoticeKind = "preliminary_notice"
	NoticeLienFiling  NoticeKind = "lien_filing"
)

// RequiredNotice is one notice the claimant must serve or record, with the
// statute text carried through unmodified from the rule table.
type RequiredNotice struct {
	Kind            NoticeKind
	Deadline        time.Time
	Urgency         Urgency
	DaysRemaining   int
	Description     string
	StatuteCitation string
}

// DeadlineResult is the outcome of one evaluation.
type DeadlineResult struct {
	CalculationID    string
	JurisdictionCode string
	JurisdictionName string
	InvoiceDate      time.Time
	ReferenceDate    time.Time
	Role             Role
	ProjectType      ProjectType

	PreliminaryRequired      bool
	PreliminaryDeadline      *time.Time
	PreliminaryUrgency       *Urgency
	PreliminaryDaysRemaining *int

	LienDeadline      time.Time
	LienUrgency       Urgency
	LienDaysRemaining int

	Notices  []RequiredNotice
	Warnings []string

	// Capability flags.  Degraded results are still returned; the flags let
	// the caller decide whether the precision is acceptable.
	HolidayCalendar          string
	HolidayCalendarDegraded  bool
	MonthArithmetic          string
	MonthArithmeticDegraded  bool
	DefaultLienPeriodApplied bool
	TriggerApplied           bool

	Disclaimer string
}

// Degraded reports whether any capability was unavailable.
func (r *DeadlineResult) Degraded() bool {
	return r.HolidayCalendarDegraded || r.MonthArithmeticDegraded
}

type noticeJSON struct {
	Kind            NoticeKind `json:"kind"`
	Deadline        string     `json:"deadline"`
	Urgency         Urgency    `json:"urgency"`
	DaysRemaining   int        `json:"days_remaining"`
	Description     string     `json:"description"`
	StatuteCitation string     `json:"statute_citation"`
}

type resultJSON struct {
	CalculationID            string       `json:"calculation_id"`
	JurisdictionCode         string       `json:"jurisdiction_code"`
	JurisdictionName         string       `json:"jurisdiction_name"`
	InvoiceDate              string       `json:"invoice_date"`
	ReferenceDate            string       `json:"reference_date"`
	Role                     Role         `json:"role"`
	ProjectType              ProjectType  `json:"project_type"`
	PreliminaryRequired      bool         `json:"preliminary_required"`
	PreliminaryDeadline      *string      `json:"preliminary_deadline"`
	PreliminaryUrgency       *Urgency     `json:"preliminary_urgency"`
	PreliminaryDaysRemaining *int         `json:"preliminary_days_remaining"`
	LienDeadline             string       `json:"lien_deadline"`
	LienUrgency              Urgency      `json:"lien_urgency"`
	LienDaysRemaining        int          `json:"lien_days_remaining"`
	Notices                  []noticeJSON `json:"notices"`
	Warnings                 []string     `json:"warnings"`
	HolidayCalendar          string       `json:"holiday_calendar"`
	HolidayCalendarDegraded  bool         `json:"holiday_calendar_degraded"`
	MonthArithmetic          string       `json:"month_arithmetic"`
	MonthArithmeticDegraded  bool         `json:"month_arithmetic_degraded"`
	DefaultLienPeriodApplied bool         `json:"default_lien_period_applied"`
	TriggerApplied           bool         `json:"trigger_applied"`
	Disclaimer               string       `json:"disclaimer"`
}

// MarshalJSON renders dates as YYYY-MM-DD and always emits the warnings and
// notices arrays, so identical results serialize to identical bytes.
func (r *DeadlineResult) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		CalculationID:            r.CalculationID,
		JurisdictionCode:         r.JurisdictionCode,
		JurisdictionName:         r.JurisdictionName,
		InvoiceDate:              calendar.FormatDate(r.InvoiceDate),
		ReferenceDate:            calendar.FormatDate(r.ReferenceDate),
		Role:                     r.Role,
		ProjectType:              r.ProjectType,
		PreliminaryRequired:      r.PreliminaryRequired,
		PreliminaryUrgency:       r.PreliminaryUrgency,
		PreliminaryDaysRemaining: r.PreliminaryDaysRemaining,
		LienDeadline:             calendar.FormatDate(r.LienDeadline),
		LienUrgency:              r.LienUrgency,
		LienDaysRemaining:        r.LienDaysRemaining,
		Notices:                  make([]noticeJSON, 0, len(r.Notices)),
		Warnings:                 r.Warnings,
		HolidayCalendar:          r.HolidayCalendar,
		HolidayCalendarDegraded:  r.HolidayCalendarDegraded,
		MonthArithmetic:          r.MonthArithmetic,
		MonthArithmeticDegraded:  r.MonthArithmeticDegraded,
		DefaultLienPeriodApplied: r.DefaultLienPeriodApplied,
		TriggerApplied:           r.TriggerApplied,
		Disclaimer:               r.Disclaimer,
	}
	if r.PreliminaryDeadline != nil {
		s := calendar.FormatDate(*r.PreliminaryDeadline)
		out.PreliminaryDeadline = &s
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	for _, n := range r.Notices {
		out.Notices = append(out.Notices, noticeJSON{
			Kind:            n.Kind,
			Deadline:        calendar.FormatDate(n.Deadline),
			Urgency:         n.Urgency,
			DaysRemaining:   n.DaysRemaining,
			Description:     n.Description,
			StatuteCitation: n.StatuteCitation,
		})
	}
	return json.Marshal(out)
}
