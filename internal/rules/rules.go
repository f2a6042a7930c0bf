package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// FallbackMarker is the replacement character used when a rule does not
// configure one. It is deliberately loud: a cleaned document should make
// unconfigured removals visible rather than silently dropping characters.
const FallbackMarker = '❌'

//go:embed default_rules.json
var defaultRulesJSON []byte

// Entry is a single replacement rule.
type Entry struct {
	// Char is the disallowed character this rule applies to.
	Char rune

	// Name is the human-readable display name used in reports.
	Name string

	// Replacement is the character substituted for Char.
	Replacement rune
}

// Table is an immutable set of replacement rules keyed by disallowed
// character. It is built once by Load and never mutated afterwards, so it is
// safe to share across goroutines without synchronization.
type Table struct {
	// entries maps each disallowed character to its rule.
	entries map[rune]Entry

	// order holds the disallowed characters sorted by codepoint. This gives
	// the table a stable iteration order, which reporting uses as the
	// tie-break between equal counts.
	order []rune
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	strict bool
	logger *slog.Logger
}

// WithStrictKeys makes Load reject rule keys containing more than one
// Unicode scalar instead of truncating them to the first scalar.
// Truncation can silently mask configuration mistakes; strict mode surfaces
// them as an error at startup.
func WithStrictKeys(strict bool) Option {
	return func(o *loadOptions) {
		o.strict = strict
	}
}

// WithLogger sets the logger used for lenient-mode truncation warnings.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Load parses a JSON rule payload into a Table.
//
// Each key must contain at least one character; the first Unicode scalar of
// the key is the disallowed character. The value is a two-element array of
// display name and replacement string. The first scalar of the replacement
// string becomes the replacement character, falling back to FallbackMarker
// when the string is empty or absent. An empty display name falls back to
// the Unicode character name.
func Load(payload []byte, opts ...Option) (*Table, error) {
	options := loadOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	var raw map[string][]string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	entries := make(map[rune]Entry, len(raw))
	for key, value := range raw {
		if key == "" {
			return nil, ErrEmptyKey
		}

		char, size := utf8.DecodeRuneInString(key)
		if char == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: key %q is not valid UTF-8", ErrEmptyKey, key)
		}
		if len(key) > size {
			if options.strict {
				return nil, fmt.Errorf("%w: key %q has %d characters", ErrMultiRuneKey, key, utf8.RuneCountInString(key))
			}
			options.logger.Warn("rule key has multiple characters, using first",
				"key", key,
				"char", fmt.Sprintf("U+%04X", char),
			)
		}

		if _, ok := entries[char]; ok {
			return nil, fmt.Errorf("%w: U+%04X appears more than once", ErrDuplicateKey, char)
		}

		name := ""
		if len(value) > 0 {
			name = value[0]
		}
		if name == "" {
			name = runenames.Name(char)
		}

		replacement := FallbackMarker
		if len(value) > 1 && value[1] != "" {
			replacement, _ = utf8.DecodeRuneInString(value[1])
		}

		entries[char] = Entry{Char: char, Name: name, Replacement: replacement}
	}

	order := make([]rune, 0, len(entries))
	for char := range entries {
		order = append(order, char)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	return &Table{entries: entries, order: order}, nil
}

// DefaultPayload returns a copy of the embedded default rule payload.
// It is what "docx-cleaner init" writes as a starter rules file.
func DefaultPayload() []byte {
	out := make([]byte, len(defaultRulesJSON))
	copy(out, defaultRulesJSON)
	return out
}

// defaultTable parses the embedded rule set exactly once.
var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(defaultRulesJSON)
})

// Default returns the rule table built from the embedded default payload.
// The embedded payload covers common invisible and typographic characters
// that word processors insert silently.
func Default() (*Table, error) {
	return defaultTable()
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Contains reports whether r is a disallowed character.
func (t *Table) Contains(r rune) bool {
	_, ok := t.entries[r]
	return ok
}

// Replacement returns the replacement character for r and whether r is
// disallowed at all.
func (t *Table) Replacement(r rune) (rune, bool) {
	entry, ok := t.entries[r]
	if !ok {
		return 0, false
	}
	return entry.Replacement, true
}

// Name returns the display name for r, or the Unicode character name if r
// is not in the table.
func (t *Table) Name(r rune) string {
	if entry, ok := t.entries[r]; ok {
		return entry.Name
	}
	return runenames.Name(r)
}

// Entry returns the full rule for r and whether it exists.
func (t *Table) Entry(r rune) (Entry, bool) {
	entry, ok := t.entries[r]
	return entry, ok
}

// Runes returns the disallowed characters sorted by codepoint.
// The returned slice is a copy; callers may modify it freely.
func (t *Table) Runes() []rune {
	out := make([]rune, len(t.order))
	copy(out, t.order)
	return out
}
