// Package document wraps the docx container library and exposes the
// document's text fragments for in-place transformation.
//
// A .docx document stores its body as WordprocessingML, where paragraphs
// (<w:p>) contain runs (<w:r>) whose text lives in <w:t> nodes. Transform
// visits every <w:t> node in document order and rewrites its text through a
// caller-supplied function, leaving all structure and formatting untouched.
// Container parsing and serialization are delegated entirely to
// github.com/nguyenthenguyen/docx.
package document
