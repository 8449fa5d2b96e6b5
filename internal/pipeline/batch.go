package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/salesreport/internal/model"
)

// DefaultConcurrency is the number of years processed at once when
// WithConcurrency is not given.
const DefaultConcurrency = 4

// BatchProcessor computes the reports of several reporting years
// concurrently over one shared, immutable dataset.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each year.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of years processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed report sets by input index.
	// Access is synchronized via mutex.
	results []*model.ReportSet
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of years processed at once.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// pipelineFactory is called once per year so no pipeline state is shared.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessYears runs a fresh pipeline for each year and returns the report
// sets in the order of years.
//
// A failing pipeline does not stop the other years: its error is recorded
// in that year's ReportSet.Errors. The returned error is non-nil only when
// ctx is cancelled; sets of years that never started are nil.
func (bp *BatchProcessor) ProcessYears(ctx context.Context, ds *model.Dataset, years []int) ([]*model.ReportSet, error) {
	bp.logger.Info("starting batch processing",
		"years", len(years),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.mu.Lock()
	bp.results = make([]*model.ReportSet, len(years))
	bp.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, year := range years {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("processing year",
				"year", year,
				"index", i+1,
				"total", len(years),
			)

			rs := model.NewReportSet(year)
			err := bp.pipelineFactory().Execute(ctx, ds, rs)

			bp.mu.Lock()
			bp.results[i] = rs
			bp.mu.Unlock()

			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				bp.logger.Warn("reports failed",
					"year", year,
					"error", err,
				)
				return nil
			}

			bp.logger.Info("year completed", "year", year)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"years", len(years),
		"elapsed", time.Since(startTime),
	)

	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.results, err
}
