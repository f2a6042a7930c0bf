// Package report renders removal statistics in multiple output formats.
//
// The Writer interface abstracts over the output format; TextWriter
// produces the human-readable console report, MarkdownWriter produces
// GitHub Flavored Markdown, and JSONWriter produces machine-readable JSON.
// MultiWriter fans a report out to several writers at once. All writers
// render the same row set: non-zero counts sorted by descending count with
// a trailing total.
package report
