package prometheus

// LienMetrics holds the metrics recorded by the calculation service.
type LienMetrics struct {
	// Calculation layer
	CalculationsTotal       CounterVec   // jurisdiction, status
	CalculationDuration     HistogramVec // handler
	WarningsTotal           CounterVec   // jurisdiction
	DegradedResultsTotal    CounterVec   // capability
	TriggerOverridesTotal   CounterVec   // jurisdiction
	DefaultLienPeriodsTotal CounterVec   // jurisdiction
	ErrorsTotal             CounterVec   // code

	// Batch layer
	BatchSize          HistogramVec
	BatchItemsInFlight GaugeVec

	// Rule table
	RuleTableJurisdictions GaugeVec
}

// Buckets.  Calculations are in-memory and finish in microseconds.
var (
	DefaultCalculationDurationBuckets = []float64{.00001, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05}
	DefaultBatchSizeBuckets           = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
)

// NewLienMetrics registers every metric on c.
func NewLienMetrics(c MetricsCollector) *LienMetrics {
	return &LienMetrics{
		CalculationsTotal: c.RegisterCounter("calculations_total",
			"Deadline calculations by jurisdiction and outcome.", "jurisdiction", "status"),
		CalculationDuration: c.RegisterHistogram("calculation_duration_seconds",
			"Deadline calculation latency by handler kind.", DefaultCalculationDurationBuckets, "handler"),
		WarningsTotal: c.RegisterCounter("warnings_total",
			"Warnings attached to successful calculations.", "jurisdiction"),
		DegradedResultsTotal: c.RegisterCounter("degraded_results_total",
			"Results computed without a capability.", "capability"),
		TriggerOverridesTotal: c.RegisterCounter("trigger_overrides_total",
			"Lien deadlines shortened by a notice of completion.", "jurisdiction"),
		DefaultLienPeriodsTotal: c.RegisterCounter("default_lien_periods_total",
			"Lien deadlines computed from the default period because rule data was incomplete.", "jurisdiction"),
		ErrorsTotal: c.RegisterCounter("errors_total",
			"Failed calculations by error code.", "code"),
		BatchSize: c.RegisterHistogram("batch_size",
			"Requests per batch.", DefaultBatchSizeBuckets),
		BatchItemsInFlight: c.RegisterGauge("batch_items_in_flight",
			"Batch items currently being evaluated."),
		RuleTableJurisdictions: c.RegisterGauge("rule_table_jurisdictions",
			"Jurisdictions in the loaded rule table."),
	}
}

// NewNoopLienMetrics returns metrics that record nothing.
func NewNoopLienMetrics() *LienMetrics {
	return &LienMetrics{
		CalculationsTotal:       noopCounterVec{},
		CalculationDuration:     noopHistogramVec{},
		WarningsTotal:           noopCounterVec{},
		DegradedResultsTotal:    noopCounterVec{},
		TriggerOverridesTotal:   noopCounterVec{},
		DefaultLienPeriodsTotal: noopCounterVec{},
		ErrorsTotal:             noopCounterVec{},
		BatchSize:               noopHistogramVec{},
		BatchItemsInFlight:      noopGaugeVec{},
		RuleTableJurisdictions:  noopGaugeVec{},
	}
}
