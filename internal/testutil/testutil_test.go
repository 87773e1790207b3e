package testutil_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LienDeadline/internal/testutil"
)

func TestRecordingLogger(t *testing.T) {
	logger := testutil.NewRecordingLogger()

	logger.Info("calculated", logging.String("jurisdiction", "TX"))
	child := logger.Named("calculation").Named("batch").With(logging.Int("items", 3))
	child.Warn("slow", logging.Bool("degraded", true))

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "TX", entries[0].Fields["jurisdiction"])
	assert.Equal(t, "", entries[0].Logger)

	assert.Equal(t, "calculation.batch", entries[1].Logger)
	assert.Equal(t, 3, entries[1].Fields["items"])
	assert.Equal(t, true, entries[1].Fields["degraded"])

	assert.True(t, logger.Has("warn", "slow"))
	assert.False(t, logger.Has("info", "slow"))

	logger.Clear()
	assert.Empty(t, logger.Entries())
	assert.NoError(t, logger.Sync())
}

func TestRecordingLogger_Concurrent(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Named("worker").Info("item")
		}()
	}
	wg.Wait()
	assert.Len(t, logger.Find("item"), 20)
}

func TestFixtures(t *testing.T) {
	assert.Equal(t, time.Wednesday, testutil.ReferenceDate.Weekday())
	assert.Equal(t, testutil.ReferenceDate, testutil.Date(t, "2025-01-15"))

	c := testutil.NewCollector(t)
	c.RegisterCounter("probe_total", "probe").WithLabelValues().Inc()
	assert.Contains(t, testutil.MetricsText(t, c), "test_probe_total 1")
}
