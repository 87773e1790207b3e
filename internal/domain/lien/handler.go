package lien

import (
	"fmt"
	"sort"
	"time"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/domain/jurisdiction"
)

// ─────────────────────────────────────────────────────────────────────────────
// Handler contract
// ─────────────────────────────────────────────────────────────────────────────

// Input is everything a handler may read.  Handlers must not modify it.
type Input struct {
	Request         DeadlineRequest
	Rule            jurisdiction.Rule
	Calendar        *calendar.Calendar
	DefaultLienDays int
}

// Partial is a handler's output before triggers, urgency and assembly.
type Partial struct {
	PreliminaryRequired bool
	Preliminary         *time.Time

	// Lien is the handler's lien date.  DefaultLien is the date without any
	// notice-of-completion trigger; the two differ only when a trigger applied.
	Lien        time.Time
	DefaultLien time.Time

	Warnings []string

	DefaultLienPeriodApplied bool

	// TriggerEvaluated is set by handlers that consume the notice-of-completion
	// date themselves; the trigger evaluator then only enforces that the
	// trigger shortened the deadline.
	TriggerEvaluated bool
	TriggerApplied   bool
}

func (p *Partial) warn(format string, args ...interface{}) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// Handler computes the deadlines of one jurisdiction.  Implementations are
// pure and safe for concurrent use.
type Handler interface {
	Evaluate(in *Input) (Partial, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(in *Input) (Partial, error)

// Evaluate calls f.
func (f HandlerFunc) Evaluate(in *Input) (Partial, error) { return f(in) }

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// HandlerRegistry maps jurisdiction codes to handlers, with a fallback for
// every code that has no entry.  Register during setup only; lookups are
// read-only afterwards.
type HandlerRegistry struct {
	handlers map[string]Handler
	fallback Handler
}

// NewHandlerRegistry creates an empty registry.  A nil fallback selects the
// generic handler.
func NewHandlerRegistry(fallback Handler) *HandlerRegistry {
	if fallback == nil {
		fallback = GenericHandler{}
	}
	return &HandlerRegistry{handlers: make(map[string]Handler), fallback: fallback}
}

// DefaultRegistry returns the registry with every specialized handler.
func DefaultRegistry() *HandlerRegistry {
	r := NewHandlerRegistry(GenericHandler{})
	r.Register("TX", TexasHandler{})
	r.Register("WA", WashingtonHandler{})
	r.Register("CA", CaliforniaHandler{})
	r.Register("OH", OhioHandler{})
	r.Register("OR", OregonHandler{})
	r.Register("HI", HawaiiHandler{})
	return r
}

// Register binds code to h, replacing any previous binding.
func (r *HandlerRegistry) Register(code string, h Handler) {
	r.handlers[code] = h
}

// Lookup returns the handler for code, or the fallback.
func (r *HandlerRegistry) Lookup(code string) Handler {
	if h, ok := r.handlers[code]; ok {
		return h
	}
	return r.fallback
}

// Specialized lists the codes with a dedicated handler, sorted.
func (r *HandlerRegistry) Specialized() []string {
	codes := make([]string, 0, len(r.handlers))
	for c := range r.handlers {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// IsSpecialized reports whether code has a dedicated handler.
func (r *HandlerRegistry) IsSpecialized(code string) bool {
	_, ok := r.handlers[code]
	return ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared arithmetic
// ─────────────────────────────────────────────────────────────────────────────

// extend rolls d forward per the rule's policy flags and records a warning
// naming the reason when the date moved.
func (in *Input) extend(p *Partial, label string, d time.Time) time.Time {
	out := in.Calendar.Extend(d, in.Rule.PolicyFlags.Extension())
	if !out.Equal(d) {
		p.warn("%s deadline %s falls on %s; extended to the next business day %s.",
			label, calendar.FormatDate(d), in.describeDay(d), calendar.FormatDate(out))
	}
	return out
}

func (in *Input) describeDay(d time.Time) string {
	if name, ok := in.Calendar.HolidayName(d); ok {
		return name
	}
	return d.Weekday().String()
}

// noticeDate computes an unextended notice date from the rule record: a
// month+day formula, a business-day count or a calendar-day offset, using
// the residential value when residential is set and one exists.
func (in *Input) noticeDate(n jurisdiction.NoticeRule, residential bool) (time.Time, bool) {
	start := in.Request.InvoiceDate
	if f, ok := n.MonthDay(residential); ok {
		return in.Calendar.MonthPlusDay(start, f.Months, f.Day, false), true
	}
	days, ok := n.Offset(residential)
	if !ok {
		return time.Time{}, false
	}
	if n.BusinessDays {
		return in.Calendar.AddBusinessDays(start, days), true
	}
	return calendar.AddDays(start, days), true
}

// residential reports whether residential values apply: the project is
// residential and the jurisdiction splits on project type.
func (in *Input) residential(p *Partial) bool {
	if !in.Request.Residential() || !in.Rule.PolicyFlags.ResidentialVsCommercial {
		return false
	}
	if !in.Rule.PreliminaryNotice.HasResidentialSplit() && !in.Rule.LienFiling.HasResidentialSplit() {
		p.warn("%s distinguishes residential projects but the rule data carries no residential period; "+
			"commercial periods were used. Verify residential requirements.", in.Rule.Name)
	}
	return true
}

// lienDeadline computes the extended lien date, substituting the configured
// default period when the rule data has none.
func (in *Input) lienDeadline(p *Partial, residential bool) {
	d, ok := in.noticeDate(in.Rule.LienFiling, residential)
	if !ok {
		d = calendar.AddDays(in.Request.InvoiceDate, in.DefaultLienDays)
		p.DefaultLienPeriodApplied = true
		p.warn("Incomplete rule data: %s has no lien filing period on record; a default of %d days was applied. "+
			"Confirm the statutory period before relying on this date.", in.Rule.Name, in.DefaultLienDays)
	}
	p.Lien = in.extend(p, "Lien filing", d)
	p.DefaultLien = p.Lien
}

// preliminaryDeadline computes the extended preliminary notice date.
func (in *Input) preliminaryDeadline(p *Partial, residential bool) {
	p.PreliminaryRequired = true
	d, ok := in.noticeDate(in.Rule.PreliminaryNotice, residential)
	if !ok {
		p.warn("Preliminary notice is required in %s but the rule data has no period; serve it as early as possible.",
			in.Rule.Name)
		return
	}
	d = in.extend(p, "Preliminary notice", d)
	p.Preliminary = &d
}
