package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// dbFileName is the history database file name inside the data directory.
const dbFileName = "docx-cleaner.db"

// ErrDatabaseNotFound is returned by Open when the database file does not
// exist and Options.CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("history database not found")

// HistoryDB stores cleaning-run history in a single SQLite file.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if they
	// do not exist. When false, a missing database is an error, which the
	// history listing uses to distinguish "no runs yet" cleanly.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating a new file and
	// mode=rwc to allow it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids
	// SQLITE_BUSY churn for this write-light workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the schema if it does not exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per cleaning pass; removal rows are stored as JSON.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		output_path TEXT,
		cleaned_at DATETIME NOT NULL,
		elapsed_ns INTEGER NOT NULL DEFAULT 0,
		paragraphs INTEGER NOT NULL DEFAULT 0,
		document_runs INTEGER NOT NULL DEFAULT 0,
		fragments INTEGER NOT NULL DEFAULT 0,
		space_runs_collapsed INTEGER NOT NULL DEFAULT 0,
		total_removed INTEGER NOT NULL DEFAULT 0,
		dry_run INTEGER NOT NULL DEFAULT 0,
		rows_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_runs_cleaned_at ON runs(cleaned_at);
	CREATE INDEX IF NOT EXISTS idx_runs_input_path ON runs(input_path);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun records one cleaning pass.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.CleanReport) error {
	rowsJSON, err := json.Marshal(report.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal removal rows: %w", err)
	}

	_, err = hdb.db.ExecContext(ctx, `
		INSERT INTO runs (
			input_path, output_path, cleaned_at, elapsed_ns,
			paragraphs, document_runs, fragments,
			space_runs_collapsed, total_removed, dry_run, rows_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.InputPath,
		report.OutputPath,
		report.DateCleaned.UTC(),
		int64(report.Elapsed),
		report.Paragraphs,
		report.Runs,
		report.Fragments,
		report.SpaceRunsCollapsed,
		report.TotalRemoved,
		report.DryRun,
		string(rowsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent cleaning passes, newest first.
// A non-positive limit returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]model.CleanReport, error) {
	query := `
		SELECT input_path, output_path, cleaned_at, elapsed_ns,
		       paragraphs, document_runs, fragments,
		       space_runs_collapsed, total_removed, dry_run, rows_json
		FROM runs
		ORDER BY cleaned_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var reports []model.CleanReport
	for rows.Next() {
		var report model.CleanReport
		var elapsed int64
		var rowsJSON string

		if err := rows.Scan(
			&report.InputPath,
			&report.OutputPath,
			&report.DateCleaned,
			&elapsed,
			&report.Paragraphs,
			&report.Runs,
			&report.Fragments,
			&report.SpaceRunsCollapsed,
			&report.TotalRemoved,
			&report.DryRun,
			&rowsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		report.Elapsed = time.Duration(elapsed)

		if err := json.Unmarshal([]byte(rowsJSON), &report.Rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal removal rows: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return reports, nil
}
