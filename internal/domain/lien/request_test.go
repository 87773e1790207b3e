package lien

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LienDeadline/pkg/errors"
)

func TestRawRequestNormalize(t *testing.T) {
	raw := &RawRequest{
		InvoiceDate:               "2025-01-15",
		Jurisdiction:              "  California ",
		Role:                      "Contractor",
		ProjectType:               " RESIDENTIAL",
		NoticeOfCompletionDate:    "2025-02-01",
		NoticeOfCommencementFiled: boolPtr(true),
	}

	req, err := raw.Normalize()
	require.NoError(t, err)
	assert.Equal(t, d("2025-01-15"), req.InvoiceDate)
	assert.Equal(t, "California", req.Jurisdiction)
	assert.Equal(t, RoleContractor, req.Role)
	assert.Equal(t, ProjectResidential, req.ProjectType)
	require.NotNil(t, req.Triggers.NoticeOfCompletionDate)
	assert.Equal(t, d("2025-02-01"), *req.Triggers.NoticeOfCompletionDate)
	assert.True(t, req.Triggers.CommencementFiled())
	assert.True(t, req.Residential())
	assert.True(t, req.Contractor())

	// The normalized request does not alias the raw flag.
	*raw.NoticeOfCommencementFiled = false
	assert.True(t, req.Triggers.CommencementFiled())
}

func TestRawRequestNormalize_Defaults(t *testing.T) {
	req, err := (&RawRequest{InvoiceDate: "2025-01-15", Jurisdiction: "TX"}).Normalize()
	require.NoError(t, err)
	assert.Equal(t, RoleSupplier, req.Role)
	assert.Equal(t, ProjectCommercial, req.ProjectType)
	assert.Nil(t, req.Triggers.NoticeOfCompletionDate)
	assert.False(t, req.Triggers.CommencementFiled())
}

func TestRawRequestNormalize_TimestampIsDateOnly(t *testing.T) {
	req, err := (&RawRequest{InvoiceDate: "2025-01-15T22:00:00-08:00", Jurisdiction: "TX"}).Normalize()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), req.InvoiceDate)
}

func TestRawRequestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		raw   *RawRequest
		code  errors.ErrorCode
		field string
	}{
		{"nil", nil, errors.CodeInvalidParam, ""},
		{"missing invoice", &RawRequest{Jurisdiction: "TX"}, errors.CodeInvalidDate, "invoice_date"},
		{"bad invoice", &RawRequest{InvoiceDate: "01/15/2025", Jurisdiction: "TX"}, errors.CodeInvalidDate, "invoice_date"},
		{"bad completion", &RawRequest{InvoiceDate: "2025-01-15", Jurisdiction: "CA", NoticeOfCompletionDate: "2025-02-30"},
			errors.CodeInvalidDate, "notice_of_completion_date"},
		{"bad role", &RawRequest{InvoiceDate: "2025-01-15", Jurisdiction: "TX", Role: "owner"}, errors.ErrCodeInvalidRole, "role"},
		{"bad project type", &RawRequest{InvoiceDate: "2025-01-15", Jurisdiction: "TX", ProjectType: "industrial"},
			errors.ErrCodeInvalidProjectType, "project_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.raw.Normalize()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), err.Error())
			assert.Equal(t, tt.field, errors.FieldOf(err))
		})
	}
}

func TestClassify(t *testing.T) {
	ref := d("2025-01-15")
	cases := []struct {
		days int
		want Urgency
	}{
		{-30, UrgencyCritical},
		{0, UrgencyCritical},
		{7, UrgencyCritical},
		{8, UrgencyWarning},
		{30, UrgencyWarning},
		{31, UrgencyNormal},
		{365, UrgencyNormal},
	}
	for _, tc := range cases {
		deadline := ref.AddDate(0, 0, tc.days)
		assert.Equal(t, tc.want, Classify(deadline, ref), "%d days", tc.days)
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := UrgencyThresholds{CriticalDays: 3, WarningDays: 14}
	ref := d("2025-01-15")

	assert.Equal(t, UrgencyCritical, th.Classify(ref.AddDate(0, 0, 3), ref))
	assert.Equal(t, UrgencyWarning, th.Classify(ref.AddDate(0, 0, 4), ref))
	assert.Equal(t, UrgencyNormal, th.Classify(ref.AddDate(0, 0, 15), ref))
	assert.NoError(t, th.Validate())
	assert.Error(t, UrgencyThresholds{CriticalDays: -1, WarningDays: 3}.Validate())
}
