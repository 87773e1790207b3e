package lien

import (
	"fmt"
	"time"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/domain/jurisdiction"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// DefaultLienDays is the lien period substituted when a jurisdiction's rule
// data has none.
const DefaultLienDays = 90

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the handler registry.
func WithRegistry(r *HandlerRegistry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithDefaultLienDays sets the fallback lien period.
func WithDefaultLienDays(days int) Option {
	return func(e *Engine) { e.defaultLienDays = days }
}

// WithThresholds sets the urgency thresholds.
func WithThresholds(t UrgencyThresholds) Option {
	return func(e *Engine) { e.assembler.thresholds = t }
}

// WithDisclaimer overrides the disclaimer text.  Empty keeps the default.
func WithDisclaimer(text string) Option {
	return func(e *Engine) {
		if text != "" {
			e.assembler.disclaimer = text
		}
	}
}

// Engine evaluates deadline requests against an immutable rule table.  It has
// no mutable state and is safe for concurrent use.
type Engine struct {
	table           *jurisdiction.Table
	calendar        *calendar.Calendar
	registry        *HandlerRegistry
	triggers        TriggerEvaluator
	assembler       assembler
	defaultLienDays int
}

// NewEngine builds an engine.  A nil calendar selects the federal calendar.
func NewEngine(table *jurisdiction.Table, cal *calendar.Calendar, opts ...Option) (*Engine, error) {
	if table == nil {
		return nil, errors.InvalidParam("rule table is required")
	}
	if cal == nil {
		cal = calendar.NewFederal()
	}
	e := &Engine{
		table:           table,
		calendar:        cal,
		registry:        DefaultRegistry(),
		assembler:       assembler{thresholds: DefaultThresholds, disclaimer: DefaultDisclaimer},
		defaultLienDays: DefaultLienDays,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.defaultLienDays <= 0 {
		return nil, errors.InvalidParam(fmt.Sprintf("default lien period must be positive, got %d", e.defaultLienDays))
	}
	if err := e.assembler.thresholds.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Table returns the rule table.
func (e *Engine) Table() *jurisdiction.Table { return e.table }

// Calendar returns the calendar capabilities.
func (e *Engine) Calendar() *calendar.Calendar { return e.calendar }

// Registry returns the handler registry.
func (e *Engine) Registry() *HandlerRegistry { return e.registry }

// Evaluate computes the deadlines for req.  today is the reference date for
// urgency and days remaining; it is never read from the system clock here.
// Identical inputs always produce identical results.
func (e *Engine) Evaluate(req DeadlineRequest, today time.Time) (*DeadlineResult, error) {
	if req.InvoiceDate.IsZero() {
		return nil, errors.InvalidDate("invoice_date", "", nil)
	}
	if today.IsZero() {
		return nil, errors.InvalidDate("reference_date", "", nil)
	}
	req.InvoiceDate = calendar.DateOf(req.InvoiceDate)
	today = calendar.DateOf(today)
	if req.Role == "" {
		req.Role = RoleSupplier
	}
	if req.ProjectType == "" {
		req.ProjectType = ProjectCommercial
	}
	if c := req.Triggers.NoticeOfCompletionDate; c != nil {
		d := calendar.DateOf(*c)
		req.Triggers.NoticeOfCompletionDate = &d
	}

	rule, err := e.table.Resolve(req.Jurisdiction)
	if err != nil {
		return nil, err
	}
	req.Jurisdiction = rule.Code

	in := &Input{
		Request:         req,
		Rule:            rule,
		Calendar:        e.calendar,
		DefaultLienDays: e.defaultLienDays,
	}
	partial, err := e.registry.Lookup(rule.Code).Evaluate(in)
	if err != nil {
		return nil, err
	}
	e.triggers.Apply(in, &partial)
	return e.assembler.assemble(in, partial, today), nil
}
