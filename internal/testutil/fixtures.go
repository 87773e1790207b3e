package testutil

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/LienDeadline/internal/domain/calendar"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/prometheus"
)

// ReferenceDate is the "today" used across package tests: Wednesday
// 2025-01-15.
var ReferenceDate = calendar.NewDate(2025, time.January, 15)

// Date parses YYYY-MM-DD or fails the test.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err, s)
	return d
}

// NewCollector returns a metrics collector on a private registry with the
// namespace "test".
func NewCollector(t testing.TB) prometheus.MetricsCollector {
	t.Helper()
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test"}, nil)
	require.NoError(t, err)
	return c
}

// MetricsText renders c in the text exposition format.
func MetricsText(t testing.TB, c prometheus.MetricsCollector) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	return buf.String()
}
