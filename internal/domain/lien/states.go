package lien

import (
	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// TexasHandler: both deadlines fall on a fixed day of a later month, with
// shorter month counts for residential projects.
type TexasHandler struct{}

// Evaluate implements Handler.
func (TexasHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	residential := in.Request.Residential()

	prelim, ok := in.Rule.PreliminaryNotice.MonthDay(residential)
	if !ok {
		return p, errors.RuleCatalog("%s: preliminary notice needs a month+day formula", in.Rule.Code)
	}
	lien, ok := in.Rule.LienFiling.MonthDay(residential)
	if !ok {
		return p, errors.RuleCatalog("%s: lien filing needs a month+day formula", in.Rule.Code)
	}

	start := in.Request.InvoiceDate
	d := in.extend(&p, "Preliminary notice", in.Calendar.MonthPlusDay(start, prelim.Months, prelim.Day, false))
	p.PreliminaryRequired = true
	p.Preliminary = &d

	p.Lien = in.extend(&p, "Lien filing", in.Calendar.MonthPlusDay(start, lien.Months, lien.Day, false))
	p.DefaultLien = p.Lien
	return p, nil
}

// WashingtonHandler: only material suppliers give the preliminary notice.
type WashingtonHandler struct{}

// Evaluate implements Handler.
func (WashingtonHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	if in.Request.Role == RoleSupplier {
		in.preliminaryDeadline(&p, false)
	} else {
		p.warn("Preliminary notice in %s applies to material suppliers only; none is required for the %s role.",
			in.Rule.Name, in.Request.Role)
	}
	in.lienDeadline(&p, false)
	return p, nil
}

// CaliforniaHandler: a recorded notice of completion replaces the default
// lien period with a shorter one that depends on the claimant's role.
type CaliforniaHandler struct{}

// Evaluate implements Handler.
func (CaliforniaHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	if in.Rule.PreliminaryNotice.Required {
		in.preliminaryDeadline(&p, false)
	}
	in.lienDeadline(&p, false)

	p.TriggerEvaluated = true
	if in.Request.Triggers.NoticeOfCompletionDate != nil {
		applyCompletionTrigger(in, &p)
	}
	return p, nil
}

// OhioHandler: the preliminary notice exists only once a notice of
// commencement has been recorded; the lien period splits on project type.
type OhioHandler struct{}

// Evaluate implements Handler.
func (OhioHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	if in.Request.Triggers.CommencementFiled() {
		in.preliminaryDeadline(&p, false)
	} else {
		p.warn("Notice of furnishing in %s is required only after a notice of commencement is recorded; "+
			"none is required unless one is filed.", in.Rule.Name)
	}
	in.lienDeadline(&p, in.Request.Residential())
	return p, nil
}

// OregonHandler: the preliminary notice period counts business days.
type OregonHandler struct{}

// Evaluate implements Handler.
func (OregonHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	days, ok := in.Rule.PreliminaryNotice.Offset(false)
	if !ok || !in.Rule.PreliminaryNotice.BusinessDays {
		return p, errors.RuleCatalog("%s: preliminary notice needs a business-day offset", in.Rule.Code)
	}
	d := in.Calendar.AddBusinessDays(in.Request.InvoiceDate, days)
	p.PreliminaryRequired = true
	p.Preliminary = &d
	if in.Calendar.HolidaysDegraded() {
		p.warn("Preliminary notice counts %d business days but no holiday calendar is available; "+
			"the date may be early by one day per holiday in the window.", days)
	}

	in.lienDeadline(&p, false)
	return p, nil
}

// HawaiiHandler: no preliminary notice and the shortest lien period, never
// extended.
type HawaiiHandler struct{}

// Evaluate implements Handler.
func (HawaiiHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	days, ok := in.Rule.LienFiling.Offset(false)
	if !ok {
		return p, errors.RuleCatalog("%s: lien filing needs a day offset", in.Rule.Code)
	}
	p.Lien = calendar.AddDays(in.Request.InvoiceDate, days)
	p.DefaultLien = p.Lien
	p.warn("URGENT: %s allows only %d days to file a lien, the shortest period of any jurisdiction, "+
		"and the deadline is not extended for weekends or holidays. File immediately.", in.Rule.Name, days)
	return p, nil
}
