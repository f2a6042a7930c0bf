package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// BatchProcessor cleans multiple documents concurrently. Each document gets
// a fresh Job (and with it a fresh counter store) from the job factory and
// a fresh Pipeline from the pipeline factory, so no state leaks between
// documents.
type BatchProcessor struct {
	pipelineFactory func() *Pipeline
	jobFactory      func(inputPath string) *Job

	// concurrency is the maximum number of documents cleaned at once.
	concurrency int

	logger *slog.Logger

	results []*model.CleanReport
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

// WithConcurrency sets the maximum number of concurrent documents.
// Non-positive values are ignored; the default is 4.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The factories are invoked
// once per document.
func NewBatchProcessor(pipelineFactory func() *Pipeline, jobFactory func(inputPath string) *Job, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		jobFactory:      jobFactory,
		concurrency:     4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch cleans every input concurrently, bounded by the configured
// concurrency, and returns the reports in input order. A failed document
// records its error in its report without stopping the others; the error
// return is non-nil only when the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []string) ([]*model.CleanReport, error) {
	return bp.ProcessBatchWithCallback(ctx, inputs, nil)
}

// ProcessBatchWithCallback is ProcessBatch with a callback invoked after
// each document completes. Callbacks are serialized, so they may write to
// shared output without further locking.
func (bp *BatchProcessor) ProcessBatchWithCallback(ctx context.Context, inputs []string, callback func(report *model.CleanReport, index int)) ([]*model.CleanReport, error) {
	bp.logger.Info("starting batch",
		"documents", len(inputs),
		"concurrency", bp.concurrency,
	)

	bp.results = make([]*model.CleanReport, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			job := bp.jobFactory(input)
			defer func() {
				if err := job.Close(); err != nil {
					bp.logger.Warn("failed to close document",
						"document", input,
						"error", err,
					)
				}
			}()

			p := bp.pipelineFactory()
			if err := p.Execute(ctx, job); err != nil {
				bp.logger.Warn("document failed",
					"document", input,
					"error", err,
				)
				// The failure is recorded in the report; keep cleaning
				// the remaining documents.
			}

			bp.mu.Lock()
			bp.results[i] = job.Report
			if callback != nil {
				callback(job.Report, i)
			}
			bp.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()
	return bp.results, err
}
