package lien

import (
	"github.com/turtacn/LienDeadline/internal/domain/calendar"
)

// applyCompletionTrigger replaces p.Lien with the date computed from the
// notice-of-completion date when the rule defines a completion period.  A
// completion date before the invoice date is malformed and ignored.
func applyCompletionTrigger(in *Input, p *Partial) {
	completion := *in.Request.Triggers.NoticeOfCompletionDate
	if completion.Before(in.Request.InvoiceDate) {
		p.warn("Notice of completion date %s is before the invoice date %s and was ignored; "+
			"the default lien period applies.", calendar.FormatDate(completion), calendar.FormatDate(in.Request.InvoiceDate))
		return
	}

	days, ok := in.Rule.LienFiling.CompletionOffset(in.Request.Contractor())
	if !ok {
		p.warn("%s honours a notice of completion but the rule data has no completion period; "+
			"the default lien period applies.", in.Rule.Name)
		return
	}

	triggered := in.extend(p, "Triggered lien filing", calendar.AddDays(completion, days))
	p.Lien = triggered
	p.TriggerApplied = true
	p.warn("Notice of completion recorded %s: lien must be recorded within %d days of it, by %s.",
		calendar.FormatDate(completion), days, calendar.FormatDate(triggered))
}

// TriggerEvaluator applies owner-filed triggers on top of a handler's output.
type TriggerEvaluator struct{}

// Apply evaluates the notice-of-completion trigger for jurisdictions that
// honour it, then enforces that a trigger can only shorten the lien deadline.
func (TriggerEvaluator) Apply(in *Input, p *Partial) {
	if p.DefaultLien.IsZero() {
		p.DefaultLien = p.Lien
	}

	if completion := in.Request.Triggers.NoticeOfCompletionDate; completion != nil && !p.TriggerEvaluated {
		if in.Rule.PolicyFlags.NoticeOfCompletionTrigger {
			applyCompletionTrigger(in, p)
		} else {
			p.warn("%s does not shorten lien deadlines on a notice of completion; the date %s was not used.",
				in.Rule.Name, calendar.FormatDate(*completion))
		}
	}

	if p.TriggerApplied && p.Lien.After(p.DefaultLien) {
		p.warn("The deadline computed from the notice of completion (%s) is later than the default lien deadline "+
			"(%s) and was discarded; a notice of completion can only shorten the deadline.",
			calendar.FormatDate(p.Lien), calendar.FormatDate(p.DefaultLien))
		p.Lien = p.DefaultLien
		p.TriggerApplied = false
	}
}
