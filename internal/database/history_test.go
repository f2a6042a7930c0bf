package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// newTestDB opens a HistoryDB in a temporary directory.
func newTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

// sampleRun builds a report as it looks after a completed pass.
func sampleRun(input string, total int64) *model.CleanReport {
	report := model.NewCleanReport(input)
	report.OutputPath = input + ".cleaned"
	report.Elapsed = 42 * time.Millisecond
	report.Paragraphs = 3
	report.Runs = 7
	report.Fragments = 9
	report.SpaceRunsCollapsed = 1
	report.SetRows([]model.Row{
		model.NewRow("Accented e", 'é', total),
	})
	return report
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer db.Close()

		if db.Path() != filepath.Join(dir, "docx-cleaner.db") {
			t.Errorf("unexpected database path %q", db.Path())
		}
	})

	t.Run("missing database without create option fails", func(t *testing.T) {
		t.Parallel()
		opts := Options{CreateIfNotExists: false}
		if _, err := Open(t.TempDir(), opts); !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("expected ErrDatabaseNotFound, got %v", err)
		}
	})
}

// TestSaveAndListRuns tests the save/list round trip.
func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves the report", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		ctx := context.Background()

		saved := sampleRun("a.docx", 5)
		if err := db.SaveRun(ctx, saved); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		runs, err := db.ListRuns(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}

		got := runs[0]
		if got.InputPath != "a.docx" {
			t.Errorf("expected input a.docx, got %q", got.InputPath)
		}
		if got.TotalRemoved != 5 {
			t.Errorf("expected total 5, got %d", got.TotalRemoved)
		}
		if got.Elapsed != 42*time.Millisecond {
			t.Errorf("expected elapsed 42ms, got %v", got.Elapsed)
		}
		if len(got.Rows) != 1 || got.Rows[0].Codepoint != "U+00E9" {
			t.Errorf("expected removal rows to survive, got %+v", got.Rows)
		}
	})

	t.Run("newest run is listed first", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		ctx := context.Background()

		older := sampleRun("old.docx", 1)
		older.DateCleaned = time.Now().Add(-time.Hour)
		newer := sampleRun("new.docx", 2)

		if err := db.SaveRun(ctx, older); err != nil {
			t.Fatal(err)
		}
		if err := db.SaveRun(ctx, newer); err != nil {
			t.Fatal(err)
		}

		runs, err := db.ListRuns(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].InputPath != "new.docx" {
			t.Errorf("expected newest first, got %q", runs[0].InputPath)
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		ctx := context.Background()

		for i := range 5 {
			run := sampleRun("doc.docx", int64(i+1))
			run.DateCleaned = time.Now().Add(time.Duration(i) * time.Minute)
			if err := db.SaveRun(ctx, run); err != nil {
				t.Fatal(err)
			}
		}

		runs, err := db.ListRuns(ctx, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 2 {
			t.Errorf("expected 2 runs, got %d", len(runs))
		}
	})

	t.Run("empty database lists nothing", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)

		runs, err := db.ListRuns(context.Background(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})
}
