// Package lien evaluates mechanics-lien deadlines: it dispatches a normalized
// request to the handler registered for its jurisdiction, applies owner-filed
// triggers, classifies urgency and assembles the final result.
package lien

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Role and project type
// ─────────────────────────────────────────────────────────────────────────────

// Role is the claimant's position in the contract chain.
type Role string

const (
	RoleSupplier      Role = "supplier"
	RoleContractor    Role = "contractor"
	RoleSubcontractor Role = "subcontractor"
)

// ParseRole normalizes s.  An empty value defaults to supplier.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleSupplier, nil
	case RoleSupplier, RoleContractor, RoleSubcontractor:
		return r, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidRole, "role %q is not one of supplier, contractor, subcontractor", s).
			WithField("role")
	}
}

// ProjectType distinguishes residential from commercial work.
type ProjectType string

const (
	ProjectCommercial  ProjectType = "commercial"
	ProjectResidential ProjectType = "residential"
)

// ParseProjectType normalizes s.  An empty value defaults to commercial.
func ParseProjectType(s string) (ProjectType, error) {
	switch p := ProjectType(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProjectCommercial, nil
	case ProjectCommercial, ProjectResidential:
		return p, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidProjectType, "project_type %q is not one of commercial, residential", s).
			WithField("project_type")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────────────────────────────────────

// TriggerDates are owner-side filings that can shorten a deadline or make a
// notice required.
type TriggerDates struct {
	NoticeOfCompletionDate    *time.Time
	NoticeOfCommencementFiled *bool
}

// CommencementFiled reports whether a notice of commencement is known to be
// recorded.  An absent flag counts as false.
func (t TriggerDates) CommencementFiled() bool {
	return t.NoticeOfCommencementFiled != nil && *t.NoticeOfCommencementFiled
}

// DeadlineRequest is a normalized evaluation input.  InvoiceDate is a
// date-only UTC value; Jurisdiction may still be a full name and is resolved
// by the engine's rule table.
type DeadlineRequest struct {
	InvoiceDate  time.Time
	Jurisdiction string
	Role         Role
	ProjectType  ProjectType
	Triggers     TriggerDates
}

// Residential reports whether the project is residential.
func (r DeadlineRequest) Residential() bool { return r.ProjectType == ProjectResidential }

// Contractor reports whether the claimant is the direct contractor.
func (r DeadlineRequest) Contractor() bool { return r.Role == RoleContractor }

// canonical renders the request in a stable form used to derive calculation
// identifiers.  code is the resolved jurisdiction code.
func (r DeadlineRequest) canonical(code string, today time.Time) string {
	completion := "-"
	if r.Triggers.NoticeOfCompletionDate != nil {
		completion = calendar.FormatDate(*r.Triggers.NoticeOfCompletionDate)
	}
	commencement := "-"
	if r.Triggers.NoticeOfCommencementFiled != nil {
		commencement = fmt.Sprintf("%t", *r.Triggers.NoticeOfCommencementFiled)
	}
	return strings.Join([]string{
		code,
		calendar.FormatDate(r.InvoiceDate),
		string(r.Role),
		string(r.ProjectType),
		completion,
		commencement,
		calendar.FormatDate(today),
	}, "|")
}

// RawRequest is the wire form of a request: dates are ISO-8601 strings and
// enumerations are free text.
type RawRequest struct {
	InvoiceDate               string `json:"invoice_date" yaml:"invoice_date"`
	Jurisdiction              string `json:"jurisdiction" yaml:"jurisdiction"`
	Role                      string `json:"role,omitempty" yaml:"role,omitempty"`
	ProjectType               string `json:"project_type,omitempty" yaml:"project_type,omitempty"`
	NoticeOfCompletionDate    string `json:"notice_of_completion_date,omitempty" yaml:"notice_of_completion_date,omitempty"`
	NoticeOfCommencementFiled *bool  `json:"notice_of_commencement_filed,omitempty" yaml:"notice_of_commencement_filed,omitempty"`
}

// Normalize parses and validates the raw request.  Date parse failures are
// InvalidDate errors naming the offending field; they are never defaulted.
func (r *RawRequest) Normalize() (DeadlineRequest, error) {
	if r == nil {
		return DeadlineRequest{}, errors.InvalidParam("request is required")
	}

	invoice, err := calendar.ParseDate(r.InvoiceDate)
	if err != nil {
		return DeadlineRequest{}, errors.InvalidDate("invoice_date", r.InvoiceDate, err)
	}

	role, err := ParseRole(r.Role)
	if err != nil {
		return DeadlineRequest{}, err
	}
	projectType, err := ParseProjectType(r.ProjectType)
	if err != nil {
		return DeadlineRequest{}, err
	}

	req := DeadlineRequest{
		InvoiceDate:  invoice,
		Jurisdiction: strings.TrimSpace(r.Jurisdiction),
		Role:         role,
		ProjectType:  projectType,
	}

	if s := strings.TrimSpace(r.NoticeOfCompletionDate); s != "" {
		completion, err := calendar.ParseDate(s)
		if err != nil {
			return DeadlineRequest{}, errors.InvalidDate("notice_of_completion_date", r.NoticeOfCompletionDate, err)
		}
		req.Triggers.NoticeOfCompletionDate = &completion
	}
	if r.NoticeOfCommencementFiled != nil {
		filed := *r.NoticeOfCommencementFiled
		req.Triggers.NoticeOfCommencementFiled = &filed
	}
	return req, nil
}
