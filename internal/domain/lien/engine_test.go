package lien

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/domain/jurisdiction"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

func d(s string) time.Time {
	t, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
func datePtr(s string) *time.Time {
	t := d(s)
	return &t
}

var today = d("2025-01-15")

func newEngine(t *testing.T, cal *calendar.Calendar, opts ...Option) *Engine {
	t.Helper()
	tbl, err := jurisdiction.DefaultTable()
	require.NoError(t, err)
	e, err := NewEngine(tbl, cal, opts...)
	require.NoError(t, err)
	return e
}

func request(code string, role Role, pt ProjectType) DeadlineRequest {
	return DeadlineRequest{InvoiceDate: d("2025-01-15"), Jurisdiction: code, Role: role, ProjectType: pt}
}

func evaluate(t *testing.T, e *Engine, req DeadlineRequest) *DeadlineResult {
	t.Helper()
	res, err := e.Evaluate(req, today)
	require.NoError(t, err)
	return res
}

func requirePrelim(t *testing.T, res *DeadlineResult, want string) {
	t.Helper()
	require.True(t, res.PreliminaryRequired)
	require.NotNil(t, res.PreliminaryDeadline)
	assert.Equal(t, d(want), *res.PreliminaryDeadline)
}

func assertWarning(t *testing.T, res *DeadlineResult, substr string) {
	t.Helper()
	for _, w := range res.Warnings {
		if strings.Contains(w, substr) {
			return
		}
	}
	t.Errorf("no warning contains %q; warnings: %v", substr, res.Warnings)
}

// ─────────────────────────────────────────────────────────────────────────────
// Specialized jurisdictions
// ─────────────────────────────────────────────────────────────────────────────

func TestEvaluate_TexasCommercial(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("TX", RoleSupplier, ProjectCommercial))

	// Day 15 of the 2nd and 3rd month; March 15 is a Saturday.
	requirePrelim(t, res, "2025-03-17")
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assertWarning(t, res, "2025-03-15 falls on Saturday")
	assert.False(t, res.Degraded())
}

func TestEvaluate_TexasResidential(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("Texas", RoleSupplier, ProjectResidential))

	// February 15 is a Saturday and February 17 is Washington's Birthday.
	requirePrelim(t, res, "2025-02-18")
	assert.Equal(t, d("2025-03-17"), res.LienDeadline)
	assert.Equal(t, "TX", res.JurisdictionCode)
	assertWarning(t, res, "2025-02-15")
	assertWarning(t, res, "2025-03-15")
}

func TestEvaluate_TexasWithoutExtensionDates(t *testing.T) {
	tbl, err := jurisdiction.DefaultTable()
	require.NoError(t, err)
	tx, _ := tbl.Get("TX")
	tx.PolicyFlags.WeekendExtension = false
	tx.PolicyFlags.HolidayExtension = false
	custom, err := jurisdiction.NewTable([]jurisdiction.Rule{tx})
	require.NoError(t, err)
	e, err := NewEngine(custom, nil)
	require.NoError(t, err)

	res := evaluate(t, e, request("TX", RoleSupplier, ProjectCommercial))
	requirePrelim(t, res, "2025-03-15")
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)

	res = evaluate(t, e, request("TX", RoleSupplier, ProjectResidential))
	requirePrelim(t, res, "2025-02-15")
	assert.Equal(t, d("2025-03-15"), res.LienDeadline)
}

func TestEvaluate_WashingtonSupplier(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("WA", RoleSupplier, ProjectCommercial))

	// 60 days is Sunday March 16.
	requirePrelim(t, res, "2025-03-17")
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
}

func TestEvaluate_WashingtonContractor(t *testing.T) {
	e := newEngine(t, nil)
	for _, role := range []Role{RoleContractor, RoleSubcontractor} {
		res := evaluate(t, e, request("WA", role, ProjectCommercial))
		assert.False(t, res.PreliminaryRequired, role)
		assert.Nil(t, res.PreliminaryDeadline, role)
		assert.Equal(t, d("2025-04-15"), res.LienDeadline, role)
		assertWarning(t, res, "material suppliers only")
	}
}

func TestEvaluate_Hawaii(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("HI", RoleSupplier, ProjectCommercial))

	assert.False(t, res.PreliminaryRequired)
	assert.Nil(t, res.PreliminaryDeadline)
	// 45 days is a Saturday and Hawaii never extends.
	assert.Equal(t, d("2025-03-01"), res.LienDeadline)
	assertWarning(t, res, "URGENT")
	require.Len(t, res.Notices, 1)
	assert.Equal(t, NoticeLienFiling, res.Notices[0].Kind)
}

func TestEvaluate_CaliforniaDefault(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("CA", RoleSupplier, ProjectCommercial))

	requirePrelim(t, res, "2025-02-04")
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assert.False(t, res.TriggerApplied)
}

func TestEvaluate_CaliforniaNoticeOfCompletion(t *testing.T) {
	e := newEngine(t, nil)
	def := evaluate(t, e, request("CA", RoleSupplier, ProjectCommercial))

	req := request("CA", RoleSupplier, ProjectCommercial)
	req.Triggers.NoticeOfCompletionDate = datePtr("2025-02-01")
	res := evaluate(t, e, req)
	assert.Equal(t, d("2025-03-03"), res.LienDeadline)
	assert.True(t, res.TriggerApplied)
	assert.True(t, res.LienDeadline.Before(def.LienDeadline))

	req.Role = RoleContractor
	res = evaluate(t, e, req)
	assert.Equal(t, d("2025-04-02"), res.LienDeadline)
	assert.True(t, res.TriggerApplied)
}

func TestEvaluate_CaliforniaMalformedCompletionDate(t *testing.T) {
	req := request("CA", RoleSupplier, ProjectCommercial)
	req.Triggers.NoticeOfCompletionDate = datePtr("2024-12-01")
	res := evaluate(t, newEngine(t, nil), req)

	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assert.False(t, res.TriggerApplied)
	assertWarning(t, res, "was ignored")
}

func TestEvaluate_OhioCommencement(t *testing.T) {
	e := newEngine(t, nil)

	req := request("OH", RoleSupplier, ProjectCommercial)
	res := evaluate(t, e, req)
	assert.False(t, res.PreliminaryRequired)
	assert.Nil(t, res.PreliminaryDeadline)
	assert.Equal(t, d("2025-03-31"), res.LienDeadline)

	req.Triggers.NoticeOfCommencementFiled = boolPtr(false)
	res = evaluate(t, e, req)
	assert.False(t, res.PreliminaryRequired)

	req.Triggers.NoticeOfCommencementFiled = boolPtr(true)
	res = evaluate(t, e, req)
	requirePrelim(t, res, "2025-02-05")
}

func TestEvaluate_OhioResidential(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("OH", RoleSupplier, ProjectResidential))
	// 60 days is Sunday March 16.
	assert.Equal(t, d("2025-03-17"), res.LienDeadline)
}

func TestEvaluate_OregonBusinessDays(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("OR", RoleSupplier, ProjectCommercial))

	// Eight business days skip the weekend and Martin Luther King Jr. Day.
	requirePrelim(t, res, "2025-01-28")
	assert.Equal(t, d("2025-03-31"), res.LienDeadline)
	assert.False(t, res.HolidayCalendarDegraded)
}

func TestEvaluate_OregonWeekendOnlyIsFlagged(t *testing.T) {
	res := evaluate(t, newEngine(t, calendar.New(calendar.WeekendOnly{}, nil)), request("OR", RoleSupplier, ProjectCommercial))

	requirePrelim(t, res, "2025-01-27")
	assert.True(t, res.HolidayCalendarDegraded)
	assert.Equal(t, "weekend-only", res.HolidayCalendar)
	assertWarning(t, res, "Holiday calendar unavailable")
	assertWarning(t, res, "no holiday calendar is available")
}

// ─────────────────────────────────────────────────────────────────────────────
// Generic jurisdictions and triggers
// ─────────────────────────────────────────────────────────────────────────────

func TestEvaluate_GenericFlatOffset(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("FL", RoleSupplier, ProjectCommercial))

	// 45 days is Saturday March 1.
	requirePrelim(t, res, "2025-03-03")
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	require.Len(t, res.Notices, 2)
	assert.Equal(t, "Fla. Stat. § 713.06(2)", res.Notices[0].StatuteCitation)
	assert.Equal(t, "Fla. Stat. § 713.08(5)", res.Notices[1].StatuteCitation)
}

func TestEvaluate_GenericResidentialSplit(t *testing.T) {
	e := newEngine(t, nil)

	res := evaluate(t, e, request("NY", RoleSupplier, ProjectResidential))
	assert.Equal(t, d("2025-05-15"), res.LienDeadline)
	res = evaluate(t, e, request("NY", RoleSupplier, ProjectCommercial))
	assert.Equal(t, d("2025-09-12"), res.LienDeadline)

	res = evaluate(t, e, request("AR", RoleSupplier, ProjectResidential))
	assertWarning(t, res, "Verify residential requirements")
}

func TestEvaluate_GenericCompletionTrigger(t *testing.T) {
	e := newEngine(t, nil)

	req := request("NV", RoleSupplier, ProjectCommercial)
	req.Triggers.NoticeOfCompletionDate = datePtr("2025-02-01")
	res := evaluate(t, e, req)
	assert.Equal(t, d("2025-03-13"), res.LienDeadline)
	assert.True(t, res.TriggerApplied)
}

func TestEvaluate_TriggerCannotLengthen(t *testing.T) {
	e := newEngine(t, nil)

	req := request("NV", RoleSupplier, ProjectCommercial)
	req.Triggers.NoticeOfCompletionDate = datePtr("2025-04-01")
	res := evaluate(t, e, req)
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assert.False(t, res.TriggerApplied)
	assertWarning(t, res, "was discarded")
}

func TestEvaluate_TriggerNotHonoured(t *testing.T) {
	req := request("TX", RoleSupplier, ProjectCommercial)
	req.Triggers.NoticeOfCompletionDate = datePtr("2025-02-01")
	res := evaluate(t, newEngine(t, nil), req)

	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assert.False(t, res.TriggerApplied)
	assertWarning(t, res, "does not shorten")
}

func TestEvaluate_DefaultLienPeriod(t *testing.T) {
	gap := jurisdiction.Rule{
		Code:       "ZZ",
		Name:       "Nowhere",
		LienFiling: jurisdiction.NoticeRule{Required: true, StatuteCitation: "ZZ § 1"},
	}
	tbl, err := jurisdiction.NewTable([]jurisdiction.Rule{gap})
	require.NoError(t, err)

	e, err := NewEngine(tbl, nil)
	require.NoError(t, err)
	res := evaluate(t, e, request("zz", RoleSupplier, ProjectCommercial))
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assert.True(t, res.DefaultLienPeriodApplied)
	assertWarning(t, res, "Incomplete rule data")

	e, err = NewEngine(tbl, nil, WithDefaultLienDays(120))
	require.NoError(t, err)
	res = evaluate(t, e, request("ZZ", RoleSupplier, ProjectCommercial))
	assert.Equal(t, d("2025-05-15"), res.LienDeadline)
}

func TestEvaluate_PreliminaryClampedToLien(t *testing.T) {
	odd := jurisdiction.Rule{
		Code:              "ZZ",
		Name:              "Nowhere",
		PreliminaryNotice: jurisdiction.NoticeRule{Required: true, DayOffset: intPtr(120)},
		LienFiling:        jurisdiction.NoticeRule{Required: true, DayOffset: intPtr(90)},
	}
	tbl, err := jurisdiction.NewTable([]jurisdiction.Rule{odd})
	require.NoError(t, err)
	e, err := NewEngine(tbl, nil)
	require.NoError(t, err)

	res := evaluate(t, e, request("ZZ", RoleSupplier, ProjectCommercial))
	requirePrelim(t, res, "2025-04-15")
	assert.Equal(t, d("2025-04-15"), res.LienDeadline)
	assertWarning(t, res, "was moved to 2025-04-15")
}

func TestEvaluate_CustomHandlerRegistration(t *testing.T) {
	r := DefaultRegistry()
	r.Register("HI", HandlerFunc(func(in *Input) (Partial, error) {
		return Partial{Lien: calendar.AddDays(in.Request.InvoiceDate, 10)}, nil
	}))
	e := newEngine(t, nil, WithRegistry(r))

	res := evaluate(t, e, request("HI", RoleSupplier, ProjectCommercial))
	assert.Equal(t, d("2025-01-25"), res.LienDeadline)
	assert.Equal(t, []string{"CA", "HI", "OH", "OR", "TX", "WA"}, r.Specialized())
	assert.True(t, r.IsSpecialized("TX"))
	assert.False(t, r.IsSpecialized("FL"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Errors, urgency, determinism
// ─────────────────────────────────────────────────────────────────────────────

func TestEvaluate_UnsupportedJurisdiction(t *testing.T) {
	_, err := newEngine(t, nil).Evaluate(request("Puerto Rico", RoleSupplier, ProjectCommercial), today)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedJurisdiction))
	assert.Len(t, errors.SupportedValues(err), jurisdiction.ExpectedJurisdictions)
}

func TestEvaluate_MissingDates(t *testing.T) {
	e := newEngine(t, nil)

	_, err := e.Evaluate(DeadlineRequest{Jurisdiction: "TX"}, today)
	require.Error(t, err)
	assert.Equal(t, "invoice_date", errors.FieldOf(err))

	_, err = e.Evaluate(request("TX", RoleSupplier, ProjectCommercial), time.Time{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidDate))
}

func TestNewEngine_Validation(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.Error(t, err)

	tbl, err := jurisdiction.DefaultTable()
	require.NoError(t, err)
	_, err = NewEngine(tbl, nil, WithDefaultLienDays(0))
	assert.Error(t, err)
	_, err = NewEngine(tbl, nil, WithThresholds(UrgencyThresholds{CriticalDays: 30, WarningDays: 7}))
	assert.Error(t, err)
}

func TestEvaluate_Urgency(t *testing.T) {
	e := newEngine(t, nil)
	req := request("CA", RoleSupplier, ProjectCommercial)

	res, err := e.Evaluate(req, d("2025-04-10"))
	require.NoError(t, err)
	assert.Equal(t, UrgencyCritical, res.LienUrgency)
	assert.Equal(t, 5, res.LienDaysRemaining)
	require.NotNil(t, res.PreliminaryUrgency)
	assert.Equal(t, UrgencyCritical, *res.PreliminaryUrgency)
	assert.Equal(t, -65, *res.PreliminaryDaysRemaining)

	res, err = e.Evaluate(req, d("2025-03-20"))
	require.NoError(t, err)
	assert.Equal(t, UrgencyWarning, res.LienUrgency)

	res = evaluate(t, e, req)
	assert.Equal(t, UrgencyNormal, res.LienUrgency)
	assert.Equal(t, 90, res.LienDaysRemaining)
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := newEngine(t, nil)
	req := request("CA", RoleSubcontractor, ProjectResidential)
	req.Triggers.NoticeOfCompletionDate = datePtr("2025-02-01")

	a, err := json.Marshal(evaluate(t, e, req))
	require.NoError(t, err)
	b, err := json.Marshal(evaluate(t, e, req))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	first := evaluate(t, e, req)
	later, err := e.Evaluate(req, d("2025-02-01"))
	require.NoError(t, err)
	assert.NotEqual(t, first.CalculationID, later.CalculationID)
	assert.Equal(t, first.CalculationID, CalculationID("CA", req, today))
}

func TestDeadlineResult_JSON(t *testing.T) {
	res := evaluate(t, newEngine(t, nil), request("WA", RoleContractor, ProjectCommercial))

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Equal(t, "2025-04-15", m["lien_deadline"])
	assert.Equal(t, "2025-01-15", m["invoice_date"])
	assert.Nil(t, m["preliminary_deadline"])
	assert.Equal(t, false, m["preliminary_required"])
	assert.Equal(t, "contractor", m["role"])
	assert.NotEmpty(t, m["disclaimer"])
	assert.NotEmpty(t, m["calculation_id"])
	assert.IsType(t, []interface{}{}, m["warnings"])
	assert.IsType(t, []interface{}{}, m["notices"])
}

// ─────────────────────────────────────────────────────────────────────────────
// Properties over the whole catalog
// ─────────────────────────────────────────────────────────────────────────────

func TestEvaluate_InvariantsForEveryJurisdiction(t *testing.T) {
	e := newEngine(t, nil)
	invoices := []string{"2024-02-29", "2025-01-15", "2025-05-31", "2025-11-27", "2025-12-31"}
	roles := []Role{RoleSupplier, RoleContractor, RoleSubcontractor}
	types := []ProjectType{ProjectCommercial, ProjectResidential}

	for _, code := range e.Table().Codes() {
		for _, inv := range invoices {
			for _, role := range roles {
				for _, pt := range types {
					req := DeadlineRequest{InvoiceDate: d(inv), Jurisdiction: code, Role: role, ProjectType: pt}
					base := evaluate(t, e, req)

					assert.False(t, base.LienDeadline.Before(req.InvoiceDate), "%s %s", code, inv)
					if base.PreliminaryRequired && base.PreliminaryDeadline != nil {
						assert.False(t, base.PreliminaryDeadline.After(base.LienDeadline), "%s %s", code, inv)
					}
					assert.Equal(t, DefaultDisclaimer, base.Disclaimer)
					assert.False(t, base.DefaultLienPeriodApplied, code)

					for _, offset := range []int{-10, 0, 5, 30, 200} {
						trig := req
						trig.Triggers.NoticeOfCompletionDate = datePtr(calendar.FormatDate(calendar.AddDays(d(inv), offset)))
						res := evaluate(t, e, trig)
						assert.False(t, res.LienDeadline.After(base.LienDeadline),
							"%s %s completion %+d: %s > %s", code, inv, offset,
							calendar.FormatDate(res.LienDeadline), calendar.FormatDate(base.LienDeadline))
						assert.False(t, res.LienDeadline.Before(req.InvoiceDate), code)
					}
				}
			}
		}
	}
}

func TestEvaluate_ConcurrentUse(t *testing.T) {
	e := newEngine(t, nil)
	want := evaluate(t, e, request("OR", RoleSupplier, ProjectCommercial))

	done := make(chan *DeadlineResult, 32)
	for i := 0; i < cap(done); i++ {
		go func() {
			res, _ := e.Evaluate(request("OR", RoleSupplier, ProjectCommercial), today)
			done <- res
		}()
	}
	for i := 0; i < cap(done); i++ {
		got := <-done
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	}
}
