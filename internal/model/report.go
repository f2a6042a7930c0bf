package model

import (
	"fmt"
	"sort"
	"time"
)

// Row is one line of the removal statistics: a single disallowed character
// and how often it was replaced.
type Row struct {
	// Name is the character's display name from the rule table.
	Name string `json:"name"`

	// Char is the literal character.
	Char string `json:"char"`

	// Codepoint is the character's codepoint rendered as "U+XXXX"
	// (uppercase hexadecimal, zero-padded to at least four digits).
	Codepoint string `json:"codepoint"`

	// Count is the number of replacements.
	Count int64 `json:"count"`
}

// NewRow builds a Row for char with its codepoint pre-rendered.
func NewRow(name string, char rune, count int64) Row {
	return Row{
		Name:      name,
		Char:      string(char),
		Codepoint: fmt.Sprintf("U+%04X", char),
		Count:     count,
	}
}

// SortRows orders rows by descending count. The sort is stable, so rows
// with equal counts keep their incoming order; callers pass rows in rule
// key order to make reports deterministic.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
}

// CleanReport is the outcome of cleaning one document.
type CleanReport struct {
	// InputPath is the document that was cleaned.
	InputPath string `json:"input_path"`

	// OutputPath is where the cleaned document was written. Empty for dry
	// runs and failed passes.
	OutputPath string `json:"output_path,omitempty"`

	// DateCleaned is when the pass started.
	DateCleaned time.Time `json:"date_cleaned"`

	// Elapsed is how long the pass took.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Paragraphs, Runs, and Fragments count the document nodes visited.
	Paragraphs int `json:"paragraphs"`
	Runs       int `json:"runs"`
	Fragments  int `json:"fragments"`

	// SpaceRunsCollapsed is how many runs of redundant spaces were
	// collapsed across all fragments.
	SpaceRunsCollapsed int64 `json:"space_runs_collapsed"`

	// Rows holds the non-zero removal counts sorted by descending count.
	Rows []Row `json:"rows"`

	// TotalRemoved is the sum of all row counts.
	TotalRemoved int64 `json:"total_removed"`

	// DryRun records that no output file was written.
	DryRun bool `json:"dry_run,omitempty"`

	// ErrorMessage holds the failure description if the pass did not
	// complete.
	ErrorMessage string `json:"error,omitempty"`
}

// NewCleanReport creates a report for the document at inputPath with the
// start time stamped.
func NewCleanReport(inputPath string) *CleanReport {
	return &CleanReport{
		InputPath:   inputPath,
		DateCleaned: time.Now(),
	}
}

// SetRows installs the removal rows: zero-count rows are dropped, the rest
// are sorted by descending count (stable, so ties keep the incoming rule
// key order), and TotalRemoved is recomputed.
func (r *CleanReport) SetRows(rows []Row) {
	kept := make([]Row, 0, len(rows))
	var total int64
	for _, row := range rows {
		if row.Count == 0 {
			continue
		}
		kept = append(kept, row)
		total += row.Count
	}
	SortRows(kept)
	r.Rows = kept
	r.TotalRemoved = total
}
