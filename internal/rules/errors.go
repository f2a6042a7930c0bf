package rules

import "errors"

// Rule payload errors.
// These errors are returned by Load and make the configuration failure mode
// programmatically distinguishable via errors.Is. A malformed rule payload is
// fatal at startup: without a valid table neither cleaning nor reporting is
// meaningful.
var (
	// ErrInvalidPayload is returned when the payload is not a valid JSON
	// object of the expected shape.
	ErrInvalidPayload = errors.New("invalid rule payload: expected JSON object of {\"char\": [name, replacement]}")

	// ErrEmptyKey is returned when a rule key contains no characters.
	// A rule must name the character it applies to.
	ErrEmptyKey = errors.New("invalid rule key: key must contain at least one character")

	// ErrMultiRuneKey is returned in strict mode when a rule key contains
	// more than one Unicode scalar. The default (lenient) mode truncates
	// such keys to their first scalar and logs a warning instead.
	ErrMultiRuneKey = errors.New("invalid rule key: key must be a single character")

	// ErrDuplicateKey is returned when two rule keys resolve to the same
	// character. This can only happen through multi-character keys being
	// truncated to a first scalar that another rule already claims.
	ErrDuplicateKey = errors.New("invalid rule key: duplicate character")
)
