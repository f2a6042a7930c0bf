package model

import (
	"testing"
)

// TestNewRow tests codepoint rendering.
func TestNewRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		char          rune
		wantCodepoint string
	}{
		{name: "latin small e acute", char: 'é', wantCodepoint: "U+00E9"},
		{name: "no-break space", char: '\u00a0', wantCodepoint: "U+00A0"},
		{name: "black star needs four digits", char: '★', wantCodepoint: "U+2605"},
		{name: "astral plane uses more digits", char: '😀', wantCodepoint: "U+1F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := NewRow("x", tt.char, 1)
			if row.Codepoint != tt.wantCodepoint {
				t.Errorf("expected codepoint %q, got %q", tt.wantCodepoint, row.Codepoint)
			}
			if row.Char != string(tt.char) {
				t.Errorf("expected char %q, got %q", string(tt.char), row.Char)
			}
		})
	}
}

// TestSetRows verifies filtering, ordering, and totals.
func TestSetRows(t *testing.T) {
	t.Parallel()

	t.Run("sorted descending with zero rows omitted", func(t *testing.T) {
		t.Parallel()
		report := NewCleanReport("in.docx")
		report.SetRows([]Row{
			NewRow("A", 'a', 3),
			NewRow("B", 'b', 5),
			NewRow("C", 'c', 0),
		})

		if len(report.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(report.Rows))
		}
		if report.Rows[0].Name != "B" || report.Rows[0].Count != 5 {
			t.Errorf("expected first row B:5, got %s:%d", report.Rows[0].Name, report.Rows[0].Count)
		}
		if report.Rows[1].Name != "A" || report.Rows[1].Count != 3 {
			t.Errorf("expected second row A:3, got %s:%d", report.Rows[1].Name, report.Rows[1].Count)
		}
		if report.TotalRemoved != 8 {
			t.Errorf("expected total 8, got %d", report.TotalRemoved)
		}
	})

	t.Run("equal counts keep incoming order", func(t *testing.T) {
		t.Parallel()
		report := NewCleanReport("in.docx")
		report.SetRows([]Row{
			NewRow("A", 'a', 2),
			NewRow("B", 'b', 2),
			NewRow("C", 'c', 2),
		})

		want := []string{"A", "B", "C"}
		for i, name := range want {
			if report.Rows[i].Name != name {
				t.Errorf("expected row %d to be %s, got %s", i, name, report.Rows[i].Name)
			}
		}
	})

	t.Run("all zero counts yields empty rows and zero total", func(t *testing.T) {
		t.Parallel()
		report := NewCleanReport("in.docx")
		report.SetRows([]Row{
			NewRow("A", 'a', 0),
			NewRow("B", 'b', 0),
		})

		if len(report.Rows) != 0 {
			t.Errorf("expected no rows, got %d", len(report.Rows))
		}
		if report.TotalRemoved != 0 {
			t.Errorf("expected total 0, got %d", report.TotalRemoved)
		}
	})
}
