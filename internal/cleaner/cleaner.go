package cleaner

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/counter"
	"github.com/FabricioArendTorres/remove-invisible-unicode-from-docx/internal/rules"
)

// spaceRuns matches maximal runs of two or more ASCII spaces. Only U+0020 is
// collapsed; other whitespace-like characters go through the rule table.
var spaceRuns = regexp.MustCompile(`[ ]{2,}`)

// Cleaner replaces disallowed characters in text fragments and collapses
// redundant spaces. It is safe for concurrent use: the rule table is
// immutable, counter increments are atomic, and the collapsed-run tally is
// an atomic as well.
type Cleaner struct {
	table    *rules.Table
	counters *counter.Store
	logger   *slog.Logger

	// collapsed tallies how many space runs were collapsed across all
	// fragments cleaned by this Cleaner. Reported as a side observation;
	// it does not influence output.
	collapsed atomic.Int64
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithLogger sets the logger used for diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// New creates a Cleaner backed by the given rule table and counter store.
// The store must be registered over the same character set as the table.
func New(table *rules.Table, counters *counter.Store, opts ...Option) *Cleaner {
	c := &Cleaner{
		table:    table,
		counters: counters,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Clean returns fragment with every disallowed character replaced by its
// configured substitute and every run of two or more spaces collapsed to
// one. Each substitution increments the character's counter. An empty
// fragment is returned unchanged with no counter activity.
func (c *Cleaner) Clean(fragment string) string {
	if fragment == "" {
		return fragment
	}

	var b strings.Builder
	b.Grow(len(fragment))
	for _, r := range fragment {
		replacement, ok := c.table.Replacement(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(replacement)
		if err := c.counters.Increment(r); err != nil {
			// Only reachable if the store was built from a different
			// table than the cleaner. Log loudly instead of dropping
			// the count silently.
			c.logger.Error("counter rejected character",
				"char", fmt.Sprintf("U+%04X", r),
				"error", err,
			)
		}
	}

	out := b.String()
	if n := len(spaceRuns.FindAllStringIndex(out, -1)); n > 0 {
		c.collapsed.Add(int64(n))
		c.logger.Debug("collapsed space runs",
			"runs", n,
			"fragment", out,
		)
		out = spaceRuns.ReplaceAllString(out, " ")
	}
	return out
}

// SpaceRunsCollapsed returns how many runs of redundant spaces this Cleaner
// has collapsed so far.
func (c *Cleaner) SpaceRunsCollapsed() int64 {
	return c.collapsed.Load()
}
