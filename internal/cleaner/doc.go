// Package cleaner implements the character cleaning pass over text
// fragments.
//
// A Cleaner substitutes every disallowed character in a fragment with its
// configured replacement, records each substitution in the counter store,
// and then collapses any run of two or more ASCII spaces produced by the
// substitution into a single space. Substitution is a single pass: a
// replacement character is never re-examined against the rule table, and
// collapsing targets only U+0020, never other whitespace-like characters.
package cleaner
