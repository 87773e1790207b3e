package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LienDeadline/pkg/errors"
)

func TestCalculate_Text(t *testing.T) {
	res := run(t, "", "calculate", "--jurisdiction", "Texas", "--invoice-date", "2025-01-15")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Jurisdiction:        Texas (TX)")
	assert.Contains(t, res.stdout, "Preliminary notice:  2025-03-17  [normal]  61 days remaining")
	assert.Contains(t, res.stdout, "Lien filing:         2025-04-15  [normal]  90 days remaining")
	assert.Contains(t, res.stdout, "not legal advice")
}

func TestCalculate_JSON(t *testing.T) {
	res := run(t, "", "-o", "json", "calculate", "-j", "CA", "-d", "2025-01-15",
		"--role", "contractor", "--completion-date", "2025-02-01")
	require.NoError(t, res.err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "CA", out["jurisdiction_code"])
	assert.Equal(t, "2025-04-02", out["lien_deadline"])
	assert.Equal(t, true, out["trigger_applied"])
	assert.Equal(t, "2025-01-15", out["reference_date"])
}

func TestCalculate_Table(t *testing.T) {
	res := run(t, "", "-o", "table", "calculate", "-j", "HI", "-d", "2025-01-15")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "NOTICE")
	assert.Contains(t, res.stdout, "lien_filing")
	assert.NotContains(t, res.stdout, "preliminary_notice")
}

func TestCalculate_CommencementFlag(t *testing.T) {
	res := run(t, "", "calculate", "-j", "OH", "-d", "2025-01-15")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Preliminary notice:  not required")

	res = run(t, "", "calculate", "-j", "OH", "-d", "2025-01-15", "--commencement-filed")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Preliminary notice:  2025-02-05")
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"missing invoice date", []string{"calculate", "-j", "TX"}, errors.CodeInvalidDate},
		{"bad invoice date", []string{"calculate", "-j", "TX", "-d", "01/15/2025"}, errors.CodeInvalidDate},
		{"unknown jurisdiction", []string{"calculate", "-j", "Puerto Rico", "-d", "2025-01-15"}, errors.CodeUnsupportedJurisdiction},
		{"bad role", []string{"calculate", "-j", "TX", "-d", "2025-01-15", "-r", "architect"}, errors.ErrCodeInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			require.Error(t, res.err)
			assert.True(t, errors.IsCode(res.err, tt.code), res.err.Error())
			assert.Equal(t, 2, ExitCode(res.err))
			assert.Empty(t, res.stdout)
		})
	}
}
