package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/config"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/rules"
	"github.com/spf13/cobra"
)

//go:embed templates/docx-cleaner.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new docx-cleaner configuration",
		Long: `Initialize creates a new .docx-cleaner configuration file in the current
directory, with commented documentation for every option.

With --rules, it also writes the built-in rule table as a starter
rules.json that you can edit and reference from the configuration.

Examples:
  # Create .docx-cleaner in current directory
  docx-cleaner init

  # Create config file at a specific path
  docx-cleaner init -o myconfig.yaml

  # Also write the built-in rules as a starting point
  docx-cleaner init --rules rules.json

  # Force overwrite existing files
  docx-cleaner init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().String("rules", "",
		"Also write the built-in rule table to this path")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	rulesPath, err := cmd.Flags().GetString("rules")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/docx-cleaner.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err := writeInitFile(cmd, outputPath, content, force); err != nil {
		return err
	}

	if rulesPath != "" {
		if err := writeInitFile(cmd, rulesPath, rules.DefaultPayload(), force); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit the configuration to set defaults such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The output suffix for cleaned files")
	fmt.Fprintln(cmd.OutOrStdout(), "  - A custom rule table (rules.json)")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Batch concurrency and history recording")

	return nil
}

// writeInitFile writes content to path, refusing to overwrite unless force
// is set.
func writeInitFile(cmd *cobra.Command, path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", path)
		}
	}

	// Create parent directories if needed
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
