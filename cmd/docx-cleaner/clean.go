package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/config"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/database"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/log"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/pipeline"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/report"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/rules"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file.docx...]",
		Short: "Remove disallowed Unicode characters from .docx files",
		Long: `Clean removes disallowed Unicode characters from Word (.docx) documents.

It walks every text run in the document body, replaces each disallowed
character according to the rule table, collapses redundant spaces left
behind, and prints per-character removal statistics. The cleaned document
is written next to the original with a suffix; the original is never
modified.

Examples:
  # Clean a single document
  docx-cleaner clean report.docx

  # Clean several documents concurrently
  docx-cleaner clean a.docx b.docx c.docx

  # Analyze without writing anything
  docx-cleaner clean --dry-run report.docx

  # Use a custom rule table and output path
  docx-cleaner clean -r rules.json -o clean.docx report.docx

  # Output JSON report to a file
  docx-cleaner clean --json --report out/report.json report.docx

Rule file (rules.json) example:
  {
    "\u00a0": ["no-break space", " "],
    "​": ["zero width space", ""]
  }`,
		Args: cobra.ArbitraryArgs,
		RunE: runCleanCmd,
	}

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output path for the cleaned document (single input only)")
	cmd.Flags().StringP("suffix", "s", config.DefaultSuffix,
		"Suffix inserted before the extension of cleaned files")
	cmd.Flags().BoolP("dry-run", "n", false,
		"Analyze and report without writing any file")

	// Rule table flags
	cmd.Flags().StringP("rules", "r", "",
		"JSON rule file path (default: built-in rule table)")
	cmd.Flags().Bool("strict", false,
		"Reject rule keys with more than one character")

	// Batch cleaning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent cleaning jobs")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .docx-cleaner in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().String("report", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runClean(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Suffix, err = cmd.Flags().GetString("suffix")
	if err != nil {
		return nil, err
	}

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	cfg.RulesPath, err = cmd.Flags().GetString("rules")
	if err != nil {
		return nil, err
	}

	cfg.StrictKeys, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	// Load tool defaults from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip if no file found.
	// CLI flags that were set explicitly always win over file values.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		applyConfigFile(cmd, cfg, file)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Get positional arguments (input documents)
	cfg.Inputs = args

	return cfg, nil
}

// applyConfigFile merges file values into cfg for every option the user
// did not set explicitly on the command line.
func applyConfigFile(cmd *cobra.Command, cfg *config.Config, file *config.File) {
	if file.Suffix != "" && !cmd.Flags().Changed("suffix") {
		cfg.Suffix = file.Suffix
	}
	if file.Rules != "" && !cmd.Flags().Changed("rules") {
		cfg.RulesPath = file.Rules
	}
	if file.Strict && !cmd.Flags().Changed("strict") {
		cfg.StrictKeys = true
	}
	if file.History != nil && !cmd.Flags().Changed("no-history") {
		cfg.SaveHistory = *file.History
	}
	if file.Batch > 0 && !cmd.Flags().Changed("batch") {
		cfg.BatchSize = file.Batch
	}
}

// setupLogger creates a structured logger based on verbosity setting.
// The handler is wrapped so invisible characters never reach the terminal
// raw; they are rendered as <U+XXXX> escapes instead.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewEscapeHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// runClean executes the cleaning run.
func runClean(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	table, err := loadRules(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting clean",
		"inputs", cfg.Inputs,
		"rules", table.Len(),
		"dryRun", cfg.DryRun,
		"batchSize", cfg.BatchSize,
		"saveHistory", cfg.SaveHistory,
	)

	// Open database connection if history is enabled
	var db *database.HistoryDB
	if cfg.SaveHistory {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	// Use batch processor for concurrent cleaning if multiple inputs
	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		return runBatchClean(ctx, cfg, table, db, logger)
	}

	// Single input or sequential cleaning
	return runSequentialClean(ctx, cfg, table, db, logger)
}

// loadRules builds the rule table from the configured source.
func loadRules(cfg *config.Config, logger *slog.Logger) (*rules.Table, error) {
	opts := []rules.Option{
		rules.WithStrictKeys(cfg.StrictKeys),
		rules.WithLogger(logger),
	}

	if cfg.RulesPath == "" {
		return rules.Load(rules.DefaultPayload(), opts...)
	}

	payload, err := os.ReadFile(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	table, err := rules.Load(payload, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid rule file %s: %w", cfg.RulesPath, err)
	}
	return table, nil
}

// runSequentialClean cleans inputs one at a time.
func runSequentialClean(ctx context.Context, cfg *config.Config, table *rules.Table, db *database.HistoryDB, logger *slog.Logger) error {
	var failed int
	for _, input := range cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		job := pipeline.NewJob(input, table, logger)
		job.Report.DryRun = cfg.DryRun

		p := pipeline.Default(cfg.Suffix, cfg.OutputPath, pipeline.WithLogger(logger))

		fmt.Printf("Cleaning %s...\n", input)
		startTime := time.Now()

		// Execute the pipeline
		err := p.Execute(ctx, job)
		if closeErr := job.Close(); closeErr != nil {
			logger.Error("failed to close document", "input", input, "error", closeErr)
		}
		if err != nil {
			failed++
			logger.Error("clean failed", "input", input, "error", err)
			fmt.Fprintf(os.Stderr, "Clean error for %s: %v\n", input, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Clean completed in %s\n", elapsed.Round(time.Millisecond))

		// Generate and output report
		if err := outputReport(cfg, job.Report); err != nil {
			logger.Error("report failed", "input", input, "error", err)
		}

		// Save to database if enabled
		if err := saveCleanReport(ctx, db, job.Report, logger); err != nil {
			logger.Error("failed to save clean report", "input", input, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to clean", failed, len(cfg.Inputs))
	}
	return nil
}

// runBatchClean cleans multiple inputs concurrently using BatchProcessor.
func runBatchClean(ctx context.Context, cfg *config.Config, table *rules.Table, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch clean of %d documents (concurrency: %d)...\n\n",
		len(cfg.Inputs), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.Default(cfg.Suffix, "", pipeline.WithLogger(logger))
		},
		func(inputPath string) *pipeline.Job {
			job := pipeline.NewJob(inputPath, table, logger)
			job.Report.DryRun = cfg.DryRun
			return job
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output; the batch processor
	// serializes callbacks, so no extra locking is needed here.
	var failed int
	_, err := bp.ProcessBatchWithCallback(ctx, cfg.Inputs, func(cleanReport *model.CleanReport, index int) {
		if cleanReport.ErrorMessage != "" {
			failed++
			fmt.Fprintf(os.Stderr, "[%d/%d] Clean error for %s: %s\n",
				index+1, len(cfg.Inputs), cleanReport.InputPath, cleanReport.ErrorMessage)
			return
		}

		fmt.Printf("[%d/%d] Clean completed: %s\n", index+1, len(cfg.Inputs), cleanReport.InputPath)

		// Generate and output report
		if err := outputReport(cfg, cleanReport); err != nil {
			logger.Error("report failed", "input", cleanReport.InputPath, "error", err)
		}

		// Save to database if enabled
		if err := saveCleanReport(ctx, db, cleanReport, logger); err != nil {
			logger.Error("failed to save clean report", "input", cleanReport.InputPath, "error", err)
		}
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch clean completed in %s\n", elapsed.Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to clean", failed, len(cfg.Inputs))
	}
	return nil
}

// outputReport outputs the clean report in the requested format.
func outputReport(cfg *config.Config, cleanReport *model.CleanReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with all data)
	if cfg.JSONReport {
		writer := report.NewJSONWriter(output, report.WithPrettyPrint())
		_, err := writer.Write(cleanReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(cleanReport)
		return err
	}

	// Human-readable statistics (default)
	writer := report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(cleanReport)
	return err
}

// saveCleanReport saves the clean report to the history database.
// If db is nil, this function is a no-op.
func saveCleanReport(ctx context.Context, db *database.HistoryDB, cleanReport *model.CleanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveRun(ctx, cleanReport); err != nil {
		return fmt.Errorf("failed to save clean report: %w", err)
	}

	logger.Info("clean report saved to history", "input", cleanReport.InputPath)
	return nil
}
