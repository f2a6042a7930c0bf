package pipeline

import (
	"context"
	"log/slog"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/cleaner"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/counter"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/document"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/rules"
)

// Job carries the state for cleaning one document through the pipeline
// steps. Each document gets its own Job, and with it its own counter store,
// so concurrent jobs never share mutable state.
type Job struct {
	// Report accumulates the outcome of the pass.
	Report *model.CleanReport

	// Table is the shared, immutable rule table.
	Table *rules.Table

	// Counters is this document's counter store, registered over Table's
	// character set.
	Counters *counter.Store

	// Cleaner is the text cleaner wired to Table and Counters.
	Cleaner *cleaner.Cleaner

	// Document is the open document, set by the open step and released by
	// Close.
	Document *document.Document
}

// NewJob creates a Job for the document at inputPath. The counter store is
// registered over the table's full character set before any cleaning
// begins.
func NewJob(inputPath string, table *rules.Table, logger *slog.Logger) *Job {
	counters := counter.NewStore(table.Runes())
	return &Job{
		Report:   model.NewCleanReport(inputPath),
		Table:    table,
		Counters: counters,
		Cleaner:  cleaner.New(table, counters, cleaner.WithLogger(logger)),
	}
}

// Close releases the job's document, if one was opened.
func (j *Job) Close() error {
	if j.Document == nil {
		return nil
	}
	err := j.Document.Close()
	j.Document = nil
	return err
}

// Step is one stage of the cleaning pipeline.
type Step interface {
	// Do executes the step against the job. A returned error aborts the
	// pipeline for this job.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order against a job.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline; add stages with AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence, stopping at the first failure.
// Cancellation is checked between steps; a step failure is recorded in the
// job's report before being returned.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"document", job.Report.InputPath,
			)
			job.Report.ErrorMessage = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"document", job.Report.InputPath,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"document", job.Report.InputPath,
				"error", err,
			)
			job.Report.ErrorMessage = err.Error()
			return err
		}
	}
	return nil
}

// Default builds the standard cleaning pipeline: open the document, clean
// its fragments, save the result. outputPath overrides the suffix-derived
// destination when non-empty.
func Default(suffix, outputPath string, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		&OpenStep{},
		&CleanStep{},
		&SaveStep{Suffix: suffix, OutputPath: outputPath},
	)
	return p
}
