package document

import (
	"regexp"
	"strings"
)

// WalkStats summarizes one traversal of the document body.
type WalkStats struct {
	// Paragraphs is the number of paragraph elements seen.
	Paragraphs int

	// Runs is the number of run elements seen.
	Runs int

	// Fragments is the number of text fragments visited and rewritten.
	Fragments int
}

// WordprocessingML element patterns. The [\s>] suffix keeps <w:p> and <w:r>
// from also matching longer element names such as <w:pPr> or <w:rPr>.
var (
	textNodeRe  = regexp.MustCompile(`(?s)(<w:t(?:\s[^>]*)?>)(.*?)(</w:t>)`)
	paragraphRe = regexp.MustCompile(`<w:p[\s>]`)
	runRe       = regexp.MustCompile(`<w:r[\s>]`)
)

// textEscaper escapes the characters that must not appear literally inside
// a <w:t> node. Quotes need no escaping in element content.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// textUnescaper reverses the entity escaping used in document.xml text
// nodes. &amp; is listed last so that sequences like &amp;lt; decode to
// the literal text "&lt;" rather than "<" (strings.Replacer does not
// rescan its own output).
var textUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#39;", "'",
	"&amp;", "&",
)

// transformRunText rewrites the text of every <w:t> node in content through
// fn, visiting nodes in document order, and returns the rewritten XML along
// with traversal statistics. Every text-bearing node is visited exactly
// once; empty and self-closing nodes carry no text and are left alone.
func transformRunText(content string, fn func(string) string) (string, WalkStats) {
	stats := WalkStats{
		Paragraphs: len(paragraphRe.FindAllStringIndex(content, -1)),
		Runs:       len(runRe.FindAllStringIndex(content, -1)),
	}

	out := textNodeRe.ReplaceAllStringFunc(content, func(node string) string {
		parts := textNodeRe.FindStringSubmatch(node)
		stats.Fragments++

		text := textUnescaper.Replace(parts[2])
		cleaned := fn(text)
		if cleaned == text {
			return node
		}
		return parts[1] + textEscaper.Replace(cleaned) + parts[3]
	})
	return out, stats
}
