// Package main provides the entry point for the docx-cleaner CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docx-cleaner.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docx-cleaner",
		Short: "Remove disallowed Unicode characters from Word documents",
		Long: `docx-cleaner removes disallowed Unicode characters from Word (.docx) documents.
Each configured character is counted and replaced with a substitute, redundant
spaces left behind are collapsed, and a per-character removal report is printed.

By default, docx-cleaner uses a built-in rule table covering common invisible
characters (non-breaking spaces, zero-width characters, soft hyphens) and
typographic substitutions (smart quotes, dashes). Use --rules to supply your
own JSON rule table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
