package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, suitable for
// sharing and documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CleanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Character Removal Report")
	md.PlainText("")

	status := "Cleaned"
	if report.DryRun {
		status = "Dry run (no file written)"
	}
	if report.ErrorMessage != "" {
		status = "Failed: " + report.ErrorMessage
	}

	infoRows := [][]string{
		{"Input", "`" + report.InputPath + "`"},
		{"Date", report.DateCleaned.Format("2006-01-02 15:04:05 MST")},
		{"Status", status},
		{"Fragments", strconv.Itoa(report.Fragments)},
		{"Space Runs Collapsed", strconv.FormatInt(report.SpaceRunsCollapsed, 10)},
	}
	if report.OutputPath != "" {
		infoRows = append(infoRows, []string{"Output", "`" + report.OutputPath + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   infoRows,
	})
	md.PlainText("")

	md.H2("Removed Characters")
	if len(report.Rows) == 0 {
		md.PlainText("No disallowed characters were found.")
	} else {
		rows := make([][]string, 0, len(report.Rows))
		for _, row := range report.Rows {
			rows = append(rows, []string{
				row.Name,
				row.Codepoint,
				"`" + row.Char + "`",
				strconv.FormatInt(row.Count, 10),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Name", "Codepoint", "Character", "Count"},
			Rows:   rows,
		})
	}
	md.PlainText("")
	md.PlainText(markdown.Bold("Total characters removed: " + strconv.FormatInt(report.TotalRemoved, 10)))
	md.PlainText("")

	return len(md.String()), md.Build()
}
