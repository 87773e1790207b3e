package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/LienDeadline/internal/application/calculation"
	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/domain/lien"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Single result
// ─────────────────────────────────────────────────────────────────────────────

type resultView struct {
	r *lien.DeadlineResult
}

func (v resultView) MarshalJSON() ([]byte, error) { return v.r.MarshalJSON() }

func (v resultView) String() string {
	r := v.r
	var b strings.Builder
	fmt.Fprintf(&b, "Jurisdiction:        %s (%s)\n", r.JurisdictionName, r.JurisdictionCode)
	fmt.Fprintf(&b, "Claimant:            %s, %s project\n", r.Role, r.ProjectType)
	fmt.Fprintf(&b, "Invoice date:        %s\n", calendar.FormatDate(r.InvoiceDate))
	fmt.Fprintf(&b, "Reference date:      %s\n", calendar.FormatDate(r.ReferenceDate))
	if r.PreliminaryDeadline != nil {
		fmt.Fprintf(&b, "Preliminary notice:  %s\n",
			deadlineLine(*r.PreliminaryDeadline, *r.PreliminaryUrgency, *r.PreliminaryDaysRemaining))
	} else {
		b.WriteString("Preliminary notice:  not required\n")
	}
	fmt.Fprintf(&b, "Lien filing:         %s\n", deadlineLine(r.LienDeadline, r.LienUrgency, r.LienDaysRemaining))

	if len(r.Notices) > 0 {
		b.WriteString("\nRequired notices:\n")
		for _, n := range r.Notices {
			fmt.Fprintf(&b, "  - %s by %s: %s (%s)\n",
				n.Kind, calendar.FormatDate(n.Deadline), n.Description, n.StatuteCitation)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	fmt.Fprintf(&b, "\nCalculation ID:      %s\n", r.CalculationID)
	fmt.Fprintf(&b, "\n%s\n", r.Disclaimer)
	return b.String()
}

func (v resultView) TableHeaders() []string {
	return []string{"NOTICE", "DEADLINE", "URGENCY", "DAYS", "CITATION"}
}

func (v resultView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.r.Notices))
	for _, n := range v.r.Notices {
		rows = append(rows, []string{
			string(n.Kind),
			calendar.FormatDate(n.Deadline),
			string(n.Urgency),
			strconv.Itoa(n.DaysRemaining),
			n.StatuteCitation,
		})
	}
	return rows
}

func deadlineLine(d time.Time, u lien.Urgency, days int) string {
	return fmt.Sprintf("%s  [%s]  %s", calendar.FormatDate(d), u, daysPhrase(days))
}

func daysPhrase(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("passed %d days ago", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day remaining"
	default:
		return fmt.Sprintf("%d days remaining", days)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch
// ─────────────────────────────────────────────────────────────────────────────

type errorJSON struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Field     string   `json:"field,omitempty"`
	Supported []string `json:"supported,omitempty"`
}

func newErrorJSON(err error) *errorJSON {
	return &errorJSON{
		Code:      string(errors.GetCode(err)),
		Message:   err.Error(),
		Field:     errors.FieldOf(err),
		Supported: errors.SupportedValues(err),
	}
}

type batchItemJSON struct {
	Index  int                  `json:"index"`
	Result *lien.DeadlineResult `json:"result,omitempty"`
	Error  *errorJSON           `json:"error,omitempty"`
}

type batchView struct {
	items []calculation.BatchItem
}

func (v batchView) failed() int {
	n := 0
	for _, it := range v.items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

func (v batchView) MarshalJSON() ([]byte, error) {
	out := make([]batchItemJSON, len(v.items))
	for i, it := range v.items {
		out[i] = batchItemJSON{Index: it.Index, Result: it.Result}
		if it.Err != nil {
			out[i].Error = newErrorJSON(it.Err)
		}
	}
	return json.Marshal(out)
}

func (v batchView) String() string {
	var b strings.Builder
	for _, it := range v.items {
		if it.Err != nil {
			fmt.Fprintf(&b, "#%d  error: %s\n", it.Index, it.Err)
			continue
		}
		r := it.Result
		fmt.Fprintf(&b, "#%d  %s  lien %s", it.Index, r.JurisdictionCode,
			deadlineLine(r.LienDeadline, r.LienUrgency, r.LienDaysRemaining))
		if r.PreliminaryDeadline != nil {
			fmt.Fprintf(&b, "  preliminary %s", calendar.FormatDate(*r.PreliminaryDeadline))
		}
		if n := len(r.Warnings); n > 0 {
			fmt.Fprintf(&b, "  (%d warnings)", n)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d requests, %d failed\n", len(v.items), v.failed())
	return b.String()
}

func (v batchView) TableHeaders() []string {
	return []string{"#", "JURISDICTION", "PRELIMINARY", "LIEN", "URGENCY", "WARNINGS", "ERROR"}
}

func (v batchView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.items))
	for _, it := range v.items {
		idx := strconv.Itoa(it.Index)
		if it.Err != nil {
			rows = append(rows, []string{idx, "", "", "", "", "", string(errors.GetCode(it.Err))})
			continue
		}
		r := it.Result
		prelim := "-"
		if r.PreliminaryDeadline != nil {
			prelim = calendar.FormatDate(*r.PreliminaryDeadline)
		}
		rows = append(rows, []string{
			idx,
			r.JurisdictionCode,
			prelim,
			calendar.FormatDate(r.LienDeadline),
			string(r.LienUrgency),
			strconv.Itoa(len(r.Warnings)),
			"",
		})
	}
	return rows
}

// ─────────────────────────────────────────────────────────────────────────────
// Jurisdictions
// ─────────────────────────────────────────────────────────────────────────────

type jurisdictionsView struct {
	list []calculation.JurisdictionSummary
}

func (v jurisdictionsView) MarshalJSON() ([]byte, error) { return json.Marshal(v.list) }

func (v jurisdictionsView) String() string {
	var b strings.Builder
	for _, j := range v.list {
		fmt.Fprintf(&b, "%s  %-22s  preliminary: %s; lien: %s\n", j.Code, j.Name, j.PreliminaryPeriod, j.LienPeriod)
	}
	return b.String()
}

func (v jurisdictionsView) TableHeaders() []string {
	return []string{"CODE", "NAME", "HANDLER", "PRELIMINARY", "LIEN", "FLAGS"}
}

func (v jurisdictionsView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.list))
	for _, j := range v.list {
		rows = append(rows, []string{j.Code, j.Name, j.Handler, j.PreliminaryPeriod, j.LienPeriod, flags(j)})
	}
	return rows
}

func flags(j calculation.JurisdictionSummary) string {
	var f []string
	if j.WeekendExtension {
		f = append(f, "weekend")
	}
	if j.HolidayExtension {
		f = append(f, "holiday")
	}
	if j.ResidentialSplit {
		f = append(f, "residential")
	}
	if j.CompletionTrigger {
		f = append(f, "completion")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ",")
}
