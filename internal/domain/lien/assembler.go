package lien

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
)

// calculationNamespace scopes the name-based calculation identifiers.
var calculationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/turtacn/LienDeadline/calculation"))

// CalculationID derives the deterministic identifier of an evaluation from
// the resolved code, the request and the reference date.
func CalculationID(code string, req DeadlineRequest, today time.Time) string {
	return uuid.NewSHA1(calculationNamespace, []byte(req.canonical(code, today))).String()
}

// assembler merges handler output, trigger overrides, urgency tiers and rule
// citations into the final result.
type assembler struct {
	thresholds UrgencyThresholds
	disclaimer string
}

func (a assembler) assemble(in *Input, p Partial, today time.Time) *DeadlineResult {
	rule := in.Rule
	cal := in.Calendar

	if p.Preliminary != nil && p.Preliminary.After(p.Lien) {
		p.warn("Preliminary notice deadline %s is later than the lien deadline %s; it was moved to %s "+
			"because the notice must be served before the lien is recorded.",
			calendar.FormatDate(*p.Preliminary), calendar.FormatDate(p.Lien), calendar.FormatDate(p.Lien))
		clamped := p.Lien
		p.Preliminary = &clamped
	}

	res := &DeadlineResult{
		CalculationID:            CalculationID(rule.Code, in.Request, today),
		JurisdictionCode:         rule.Code,
		JurisdictionName:         rule.Name,
		InvoiceDate:              in.Request.InvoiceDate,
		ReferenceDate:            today,
		Role:                     in.Request.Role,
		ProjectType:              in.Request.ProjectType,
		PreliminaryRequired:      p.PreliminaryRequired,
		LienDeadline:             p.Lien,
		LienDaysRemaining:        calendar.DaysBetween(today, p.Lien),
		HolidayCalendar:          cal.HolidayProvider(),
		HolidayCalendarDegraded:  cal.HolidaysDegraded(),
		MonthArithmetic:          cal.MonthProvider(),
		MonthArithmeticDegraded:  cal.MonthsDegraded(),
		DefaultLienPeriodApplied: p.DefaultLienPeriodApplied,
		TriggerApplied:           p.TriggerApplied,
		Disclaimer:               a.disclaimer,
	}
	res.LienUrgency = a.thresholds.tier(res.LienDaysRemaining)

	if p.PreliminaryRequired && p.Preliminary != nil {
		d := *p.Preliminary
		days := calendar.DaysBetween(today, d)
		tier := a.thresholds.tier(days)
		res.PreliminaryDeadline = &d
		res.PreliminaryDaysRemaining = &days
		res.PreliminaryUrgency = &tier
		res.Notices = append(res.Notices, RequiredNotice{
			Kind:            NoticePreliminary,
			Deadline:        d,
			Urgency:         tier,
			DaysRemaining:   days,
			Description:     rule.PreliminaryNotice.Description,
			StatuteCitation: rule.PreliminaryNotice.StatuteCitation,
		})
	}
	res.Notices = append(res.Notices, RequiredNotice{
		Kind:            NoticeLienFiling,
		Deadline:        p.Lien,
		Urgency:         res.LienUrgency,
		DaysRemaining:   res.LienDaysRemaining,
		Description:     rule.LienFiling.Description,
		StatuteCitation: rule.LienFiling.StatuteCitation,
	})

	warnings := make([]string, 0, len(p.Warnings)+3)
	warnings = append(warnings, p.Warnings...)
	if rule.Notes != "" {
		warnings = append(warnings, fmt.Sprintf("%s: %s", rule.Name, rule.Notes))
	}
	if res.HolidayCalendarDegraded {
		warnings = append(warnings, "Holiday calendar unavailable: business days exclude weekends only and "+
			"deadlines are not extended past holidays. Verify any date near a public holiday.")
	}
	if res.MonthArithmeticDegraded {
		warnings = append(warnings, "Month arithmetic is approximate (30-day months): month-based deadlines "+
			"may differ from the statutory date by several days.")
	}
	res.Warnings = warnings
	return res
}
