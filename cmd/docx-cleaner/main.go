// Package main provides the entry point for the docx-cleaner CLI.
//
// docx-cleaner removes disallowed Unicode characters from Word (.docx)
// documents. Each configured character is replaced with a substitute,
// redundant spaces left behind are collapsed, and a per-character removal
// report is printed.
//
// Usage:
//
//	docx-cleaner clean <file.docx>
//	docx-cleaner clean --dry-run <file.docx>
//
// See --help for all available options.
package main

// main is the entry point for docx-cleaner.
func main() {
	Execute()
}
