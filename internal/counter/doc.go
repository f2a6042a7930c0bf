// Package counter provides the shared removal counter store.
//
// A Store tracks how many times each disallowed character was replaced over
// a document pass. Its key set is fixed at construction to the rule table's
// character set; only the per-character counts mutate. Increments are atomic,
// so fragments may be cleaned concurrently without losing updates.
package counter
