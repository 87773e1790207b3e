package calculation

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/LienDeadline/internal/domain/lien"
	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

func (s *serviceImpl) CalculateBatch(ctx context.Context, raws []*lien.RawRequest) ([]BatchItem, error) {
	if s.cfg.MaxBatchItems > 0 && len(raws) > s.cfg.MaxBatchItems {
		return nil, errors.Newf(errors.ErrCodeBadRequest,
			"batch of %d requests exceeds the limit of %d", len(raws), s.cfg.MaxBatchItems)
	}
	s.metrics.BatchSize.WithLabelValues().Observe(float64(len(raws)))

	start := time.Now()
	items := make([]BatchItem, len(raws))
	inFlight := s.metrics.BatchItemsInFlight.WithLabelValues()

	// Items never fail the group; each carries its own error.  Cancellation
	// reaches pending items through Calculate's context check.
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			inFlight.Inc()
			defer inFlight.Dec()

			result, err := s.Calculate(ctx, raw)
			items[i] = BatchItem{Index: i, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch calculated",
		logging.Int("items", len(items)),
		logging.Int("failed", failed),
		logging.Int("concurrency", s.cfg.BatchConcurrency),
		logging.Duration("elapsed", time.Since(start)),
	)
	return items, nil
}
