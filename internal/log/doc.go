// Package log provides logging utilities for docx-cleaner.
//
// The tool routinely logs text fragments that contain exactly the
// characters it exists to remove: zero-width spaces, no-break spaces, and
// other invisible or non-printable scalars. EscapeHandler wraps an
// slog.Handler and rewrites such characters in string attributes to their
// visible "U+XXXX" form so log output stays unambiguous and cannot garble
// a terminal.
package log
