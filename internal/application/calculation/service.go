// Package calculation is the application layer over the lien engine.  It
// turns wire requests into results, supplies the reference date, and records
// logs and metrics for every evaluation.
package calculation

import (
	"context"
	"sort"

	"github.com/turtacn/LienDeadline/internal/domain/lien"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// BatchItem is the outcome of one batch entry.  Exactly one of Result and Err
// is set.
type BatchItem struct {
	Index  int
	Result *lien.DeadlineResult
	Err    error
}

// JurisdictionSummary describes one rule table entry for listings.
type JurisdictionSummary struct {
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	Aliases             []string `json:"aliases,omitempty"`
	Handler             string   `json:"handler"`
	PreliminaryRequired bool     `json:"preliminary_required"`
	PreliminaryPeriod   string   `json:"preliminary_period"`
	LienPeriod          string   `json:"lien_period"`
	WeekendExtension    bool     `json:"weekend_extension"`
	HolidayExtension    bool     `json:"holiday_extension"`
	ResidentialSplit    bool     `json:"residential_split"`
	CompletionTrigger   bool     `json:"completion_trigger"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

// Service is the application contract for deadline calculation.
type Service interface {
	// Calculate normalizes raw and evaluates it against today's date.
	Calculate(ctx context.Context, raw *lien.RawRequest) (*lien.DeadlineResult, error)

	// CalculateBatch evaluates every request concurrently.  Items keep input
	// order.  The error is set only when the batch itself is rejected.
	CalculateBatch(ctx context.Context, raws []*lien.RawRequest) ([]BatchItem, error)

	// Jurisdictions lists the rule table in code order.
	Jurisdictions() []JurisdictionSummary
}

// ServiceConfig holds tunables.
type ServiceConfig struct {
	BatchConcurrency int
	MaxBatchItems    int
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

const (
	handlerSpecialized = "specialized"
	handlerGeneric     = "generic"
	handlerUnresolved  = "unresolved"

	statusOK    = "ok"
	statusError = "error"

	unknownJurisdiction = "unknown"
)

type serviceImpl struct {
	engine  *lien.Engine
	clock   Clock
	logger  logging.Logger
	metrics *prometheus.LienMetrics
	cfg     ServiceConfig
}

// NewService wires the service.  A nil clock reads the UTC wall clock, a nil
// logger discards, and nil metrics record nothing.
func NewService(engine *lien.Engine, clock Clock, logger logging.Logger, metrics *prometheus.LienMetrics, cfg ServiceConfig) (Service, error) {
	if engine == nil {
		return nil, errors.InvalidParam("engine is required")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prometheus.NewNoopLienMetrics()
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 1
	}

	metrics.RuleTableJurisdictions.WithLabelValues().Set(float64(engine.Table().Len()))
	return &serviceImpl{
		engine:  engine,
		clock:   clock,
		logger:  logger.Named("calculation"),
		metrics: metrics,
		cfg:     cfg,
	}, nil
}

func (s *serviceImpl) Calculate(ctx context.Context, raw *lien.RawRequest) (*lien.DeadlineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(unknownJurisdiction, errors.Wrap(err, errors.CodeCanceled, "calculation canceled"))
	}

	req, err := raw.Normalize()
	if err != nil {
		return nil, s.fail(unknownJurisdiction, err)
	}

	code, handler := unknownJurisdiction, handlerUnresolved
	if c, err := s.engine.Table().Normalize(req.Jurisdiction); err == nil {
		code, handler = c, handlerGeneric
		if s.engine.Registry().IsSpecialized(c) {
			handler = handlerSpecialized
		}
	}

	timer := prometheus.NewTimer(s.metrics.CalculationDuration.WithLabelValues(handler))
	result, err := s.engine.Evaluate(req, s.clock.Today())
	elapsed := timer.ObserveDuration()
	if err != nil {
		return nil, s.fail(code, err)
	}

	s.record(result)
	s.logger.Info("deadline calculated",
		logging.String("calculation_id", result.CalculationID),
		logging.String("jurisdiction", result.JurisdictionCode),
		logging.String("handler", handler),
		logging.Date("lien_deadline", result.LienDeadline),
		logging.String("lien_urgency", string(result.LienUrgency)),
		logging.Int("warnings", len(result.Warnings)),
		logging.Bool("degraded", result.Degraded()),
		logging.Duration("elapsed", elapsed),
	)
	return result, nil
}

// record updates the success metrics for result.
func (s *serviceImpl) record(r *lien.DeadlineResult) {
	m := s.metrics
	m.CalculationsTotal.WithLabelValues(r.JurisdictionCode, statusOK).Inc()
	if n := len(r.Warnings); n > 0 {
		m.WarningsTotal.WithLabelValues(r.JurisdictionCode).Add(float64(n))
	}
	if r.HolidayCalendarDegraded {
		m.DegradedResultsTotal.WithLabelValues("holiday_calendar").Inc()
	}
	if r.MonthArithmeticDegraded {
		m.DegradedResultsTotal.WithLabelValues("month_arithmetic").Inc()
	}
	if r.TriggerApplied {
		m.TriggerOverridesTotal.WithLabelValues(r.JurisdictionCode).Inc()
	}
	if r.DefaultLienPeriodApplied {
		m.DefaultLienPeriodsTotal.WithLabelValues(r.JurisdictionCode).Inc()
	}
}

// fail logs and counts err, then returns it unchanged.
func (s *serviceImpl) fail(jurisdiction string, err error) error {
	code := errors.GetCode(err)
	s.metrics.CalculationsTotal.WithLabelValues(jurisdiction, statusError).Inc()
	s.metrics.ErrorsTotal.WithLabelValues(string(code)).Inc()

	fields := []logging.Field{
		logging.String("jurisdiction", jurisdiction),
		logging.String("code", string(code)),
		logging.Err(err),
	}
	if errors.IsClientError(code) {
		s.logger.Warn("calculation rejected", fields...)
	} else {
		s.logger.Error("calculation failed", fields...)
	}
	return err
}

func (s *serviceImpl) Jurisdictions() []JurisdictionSummary {
	rules := s.engine.Table().List()
	out := make([]JurisdictionSummary, 0, len(rules))
	for _, r := range rules {
		handler := handlerGeneric
		if s.engine.Registry().IsSpecialized(r.Code) {
			handler = handlerSpecialized
		}
		out = append(out, JurisdictionSummary{
			Code:                r.Code,
			Name:                r.Name,
			Aliases:             append([]string(nil), r.Aliases...),
			Handler:             handler,
			PreliminaryRequired: r.PreliminaryNotice.Required,
			PreliminaryPeriod:   DescribePeriod(r.PreliminaryNotice),
			LienPeriod:          DescribePeriod(r.LienFiling),
			WeekendExtension:    r.PolicyFlags.WeekendExtension,
			HolidayExtension:    r.PolicyFlags.HolidayExtension,
			ResidentialSplit:    r.PolicyFlags.ResidentialVsCommercial,
			CompletionTrigger:   r.PolicyFlags.NoticeOfCompletionTrigger,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
