package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// invisible holds printable-per-unicode.IsPrint scalars that still render
// as nothing and would make log output misleading if passed through.
var invisible = map[rune]bool{
	'\u00ad': true, // soft hyphen
	'\u200b': true, // zero width space
	'\u200c': true, // zero width non-joiner
	'\u200d': true, // zero width joiner
	'\u2060': true, // word joiner
	'\ufeff': true, // zero width no-break space
}

// EscapeHandler wraps an slog.Handler and replaces non-printable and
// invisible characters in string attribute values with their codepoint
// notation. It integrates with standard slog APIs and works with any
// underlying handler.
type EscapeHandler struct {
	handler slog.Handler
}

// NewEscapeHandler creates an EscapeHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewEscapeHandler(handler slog.Handler) *EscapeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &EscapeHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *EscapeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle escapes the record's string attributes and passes the record on.
func (h *EscapeHandler) Handle(ctx context.Context, r slog.Record) error {
	escaped := slog.NewRecord(r.Time, r.Level, EscapeString(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		escaped.AddAttrs(escapeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, escaped)
}

// WithAttrs returns a new EscapeHandler whose underlying handler has the
// given (escaped) attributes.
func (h *EscapeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	escaped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		escaped[i] = escapeAttr(a)
	}
	return &EscapeHandler{handler: h.handler.WithAttrs(escaped)}
}

// WithGroup returns a new EscapeHandler with the given group name.
func (h *EscapeHandler) WithGroup(name string) slog.Handler {
	return &EscapeHandler{handler: h.handler.WithGroup(name)}
}

// escapeAttr escapes string values, including strings nested in groups.
func escapeAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, EscapeString(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		escaped := make([]any, 0, len(group))
		for _, ga := range group {
			escaped = append(escaped, escapeAttr(ga))
		}
		return slog.Group(a.Key, escaped...)
	default:
		return a
	}
}

// EscapeString replaces every non-printable or invisible character in s
// with its "<U+XXXX>" notation. Printable text passes through unchanged.
func EscapeString(s string) string {
	needsEscape := false
	for _, r := range s {
		if !unicode.IsPrint(r) || invisible[r] {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if !unicode.IsPrint(r) || invisible[r] {
			fmt.Fprintf(&b, "<U+%04X>", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
