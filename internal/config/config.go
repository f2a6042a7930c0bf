package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "docx-cleaner"

	// DefaultSuffix is inserted before the file extension of cleaned
	// documents, so "report.docx" becomes "report_cleaned.docx". The
	// source document is never overwritten by default.
	DefaultSuffix = "_cleaned"

	// DefaultBatchSize is the number of documents cleaned concurrently
	// when several inputs are given. Cleaning is CPU-light and I/O-bound,
	// so a small number of workers is plenty.
	DefaultBatchSize = 4
)

// Config holds all options for a cleaning run. It is populated from CLI
// flags (and optionally a config file) and passed through the application
// by dependency injection rather than global state.
type Config struct {
	// Inputs is the list of .docx files to clean.
	Inputs []string

	// OutputPath is an explicit destination for the cleaned document.
	// Only valid with a single input; empty means derive the destination
	// from the input path and Suffix.
	OutputPath string

	// Suffix is inserted between the file stem and extension when
	// deriving output paths.
	Suffix string

	// RulesPath is the path to a JSON rule payload. Empty means use the
	// embedded default rules.
	RulesPath string

	// StrictKeys rejects rule keys with more than one character instead
	// of truncating them to the first one.
	StrictKeys bool

	// DryRun analyzes and reports without writing any output file.
	DryRun bool

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// BatchSize is the number of documents cleaned concurrently.
	BatchSize int

	// SaveHistory records each run in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is an explicit path to the YAML configuration file.
	// Empty means search the usual locations.
	ConfigFilePath string

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values. Several defaults are
// non-zero, so relying on zero values would be wrong; this constructor
// also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Suffix:      DefaultSuffix,
		BatchSize:   DefaultBatchSize,
		SaveHistory: true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for docx-cleaner, following
// the XDG Base Directory Specification.
// On Linux: ~/.local/share/docx-cleaner
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for docx-cleaner.
// On Linux: ~/.config/docx-cleaner
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any document is touched, so
// failures surface with a clear message up front.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if c.OutputPath != "" && len(c.Inputs) > 1 {
		return ErrOutputWithMultipleInputs
	}

	if c.OutputPath == "" && c.Suffix == "" {
		return ErrEmptySuffix
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
