package lien

// GenericHandler evaluates any jurisdiction straight from its rule record:
// flat or business-day offsets (or a month+day formula), residential values
// where the jurisdiction splits on project type, and weekend/holiday
// extension per the policy flags.  Notice-of-completion triggers are left to
// the trigger evaluator.
type GenericHandler struct{}

// Evaluate implements Handler.
func (GenericHandler) Evaluate(in *Input) (Partial, error) {
	var p Partial
	residential := in.residential(&p)

	if in.Rule.PreliminaryNotice.Required {
		in.preliminaryDeadline(&p, residential)
	}
	in.lienDeadline(&p, residential)
	return p, nil
}
