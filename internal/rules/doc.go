// Package rules defines the character replacement rule table.
//
// A rule table maps each disallowed Unicode character to a human-readable
// display name and a single replacement character. The table is loaded once
// from a JSON payload at startup and is immutable afterwards; every component
// that needs it receives it explicitly rather than through global state.
//
// The payload format is a JSON object mapping a one-character key to a
// two-element array of display name and replacement string:
//
//	{
//	  "\u00a0": ["NO-BREAK SPACE", " "],
//	  "​": ["ZERO WIDTH SPACE", ""]
//	}
//
// An empty or absent replacement falls back to a visible marker so that
// removed characters stay noticeable in the cleaned document.
package rules
