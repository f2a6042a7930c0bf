package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// TextWriter outputs the human-readable removal statistics.
// The same rendered text serves both the console stream and message-style
// display: Render returns the composed string and Write sends it to the
// configured destination.
type TextWriter struct {
	baseWriter

	// verbose adds traversal statistics to the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose adds paragraph, run, and fragment counts to the report.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the report and writes it to the output destination.
func (w *TextWriter) Write(report *model.CleanReport) (int, error) {
	return w.output.Write([]byte(w.Render(report)))
}

// Render composes the full report as a single string. One line per
// character with a non-zero count, sorted by descending count, followed by
// the total and the output location.
func (w *TextWriter) Render(report *model.CleanReport) string {
	var sb strings.Builder

	sb.WriteString("\nCharacter Removal Statistics:\n")
	sb.WriteString("============================\n")

	for _, row := range report.Rows {
		sb.WriteString(fmt.Sprintf("%s (%s) - %s: %d\n", row.Name, row.Codepoint, row.Char, row.Count))
	}

	sb.WriteString(fmt.Sprintf("\nTotal characters removed: %d\n", report.TotalRemoved))
	if report.SpaceRunsCollapsed > 0 {
		sb.WriteString(fmt.Sprintf("Space runs collapsed: %d\n", report.SpaceRunsCollapsed))
	}

	if w.verbose {
		sb.WriteString(fmt.Sprintf("Paragraphs: %d, runs: %d, fragments: %d\n",
			report.Paragraphs, report.Runs, report.Fragments))
	}

	switch {
	case report.DryRun:
		sb.WriteString("Dry run: no file written\n")
	case report.OutputPath != "":
		sb.WriteString(fmt.Sprintf("Saved as: %s\n", report.OutputPath))
	}

	return sb.String()
}
