package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/document"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// ErrNoDocument is returned by steps that require an open document when the
// open step has not run.
var ErrNoDocument = errors.New("no document opened for this job")

// OpenStep opens the job's input document.
type OpenStep struct{}

// Name returns the step name.
func (s *OpenStep) Name() string { return "open" }

// Do opens the document at the job's input path.
func (s *OpenStep) Do(_ context.Context, job *Job) error {
	doc, err := document.Open(job.Report.InputPath)
	if err != nil {
		return err
	}
	job.Document = doc
	return nil
}

// CleanStep runs the character cleaning pass over every text fragment of
// the document and fills the report with counts and traversal statistics.
type CleanStep struct{}

// Name returns the step name.
func (s *CleanStep) Name() string { return "clean" }

// Do cleans the document in place.
func (s *CleanStep) Do(_ context.Context, job *Job) error {
	if job.Document == nil {
		return ErrNoDocument
	}

	job.Counters.Reset()
	stats := job.Document.Transform(job.Cleaner.Clean)

	job.Report.Paragraphs = stats.Paragraphs
	job.Report.Runs = stats.Runs
	job.Report.Fragments = stats.Fragments
	job.Report.SpaceRunsCollapsed = job.Cleaner.SpaceRunsCollapsed()

	rows := make([]model.Row, 0, job.Counters.Len())
	for _, c := range job.Counters.Snapshot() {
		rows = append(rows, model.NewRow(job.Table.Name(c.Char), c.Char, c.N))
	}
	job.Report.SetRows(rows)
	job.Report.Elapsed = time.Since(job.Report.DateCleaned)

	return nil
}

// SaveStep writes the cleaned document. For dry runs it records that no
// file was written and leaves the filesystem untouched.
type SaveStep struct {
	// Suffix is inserted before the file extension to derive the output
	// path when OutputPath is empty.
	Suffix string

	// OutputPath, when non-empty, is used verbatim as the destination.
	OutputPath string
}

// Name returns the step name.
func (s *SaveStep) Name() string { return "save" }

// Do writes the cleaned document to its destination.
func (s *SaveStep) Do(_ context.Context, job *Job) error {
	if job.Report.DryRun {
		return nil
	}
	if job.Document == nil {
		return ErrNoDocument
	}

	out := s.OutputPath
	if out == "" {
		out = document.DefaultOutputPath(job.Report.InputPath, s.Suffix)
	}
	if err := job.Document.SaveAs(out); err != nil {
		return err
	}
	job.Report.OutputPath = out
	return nil
}
