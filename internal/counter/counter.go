package counter

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUnregisteredRune is returned by Increment for a character outside the
// store's key set. This indicates a wiring bug: the cleaner and the store
// must be built from the same rule table, so the condition cannot occur in a
// correctly assembled pipeline.
var ErrUnregisteredRune = errors.New("character is not registered in the counter store")

// Count is one (character, count) pair from a snapshot.
type Count struct {
	// Char is the disallowed character.
	Char rune

	// N is the number of times Char was replaced.
	N int64
}

// Store counts character replacements. The key set is fixed at construction;
// counts are per-key atomics, so concurrent increments never lose updates and
// never observe a partially written value.
type Store struct {
	counts map[rune]*atomic.Int64

	// order preserves the registration order of the key set so snapshots
	// are deterministic.
	order []rune
}

// NewStore creates a Store with one zeroed counter per character.
// Snapshot order follows the order of chars.
func NewStore(chars []rune) *Store {
	counts := make(map[rune]*atomic.Int64, len(chars))
	order := make([]rune, 0, len(chars))
	for _, c := range chars {
		if _, ok := counts[c]; ok {
			continue
		}
		counts[c] = &atomic.Int64{}
		order = append(order, c)
	}
	return &Store{counts: counts, order: order}
}

// Reset zeroes every counter. It must be called before reusing a Store for
// another document pass; a fresh Store starts zeroed.
func (s *Store) Reset() {
	for _, c := range s.counts {
		c.Store(0)
	}
}

// Increment atomically adds one to the counter for r.
// It returns ErrUnregisteredRune if r is not part of the key set.
func (s *Store) Increment(r rune) error {
	c, ok := s.counts[r]
	if !ok {
		return fmt.Errorf("%w: U+%04X", ErrUnregisteredRune, r)
	}
	c.Add(1)
	return nil
}

// Get returns the current count for r, or zero if r is not registered.
func (s *Store) Get(r rune) int64 {
	c, ok := s.counts[r]
	if !ok {
		return 0
	}
	return c.Load()
}

// Snapshot returns every (character, count) pair in registration order.
// Each individual counter reflects all increments that completed before the
// call; exact cross-counter consistency is not guaranteed while increments
// are still in flight.
func (s *Store) Snapshot() []Count {
	out := make([]Count, 0, len(s.order))
	for _, r := range s.order {
		out = append(out, Count{Char: r, N: s.counts[r].Load()})
	}
	return out
}

// Total returns the sum of all counters.
func (s *Store) Total() int64 {
	var total int64
	for _, c := range s.counts {
		total += c.Load()
	}
	return total
}

// Len returns the number of registered characters.
func (s *Store) Len() int {
	return len(s.order)
}
