package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// Document is an open .docx file whose text content can be rewritten in
// place and saved under a new path.
type Document struct {
	file     *docx.ReplaceDocx
	editable *docx.Docx
	path     string
}

// Open reads and parses the .docx file at path.
// The returned Document must be closed with Close.
func Open(path string) (*Document, error) {
	file, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	return &Document{
		file:     file,
		editable: file.Editable(),
		path:     path,
	}, nil
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Transform applies fn to every text fragment of the document body in
// document order and writes the results back. Fragment text is XML-unescaped
// before fn sees it and re-escaped afterwards, so fn operates on plain text.
// Structure (paragraph and run boundaries, formatting) is never altered.
func (d *Document) Transform(fn func(string) string) WalkStats {
	content := d.editable.GetContent()
	rewritten, stats := transformRunText(content, fn)
	if rewritten != content {
		d.editable.SetContent(rewritten)
	}
	return stats
}

// SaveAs writes the document to path, leaving the original file untouched.
func (d *Document) SaveAs(path string) error {
	if err := d.editable.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying container. It is safe to call more than
// once.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	d.editable = nil
	return err
}

// DefaultOutputPath derives the output path for input by inserting suffix
// between the file stem and its extension, in the same directory.
// For "report.docx" and suffix "_cleaned" it returns "report_cleaned.docx".
func DefaultOutputPath(input, suffix string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}
