package report

import (
	"io"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// Writer defines the interface for report output.
// Implementations render a clean report in a specific format and write it
// to their configured destination.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.CleanReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, for example to
// both the terminal and a report file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers and stops on the
// first error encountered.
func (m *MultiWriter) Write(report *model.CleanReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
