package memsig

import "errors"

// Errors returned while building a Signature.
var (
	// ErrLengthMismatch is returned when a pattern and its mask differ in length.
	ErrLengthMismatch = errors.New("pattern and mask length mismatch")

	// ErrUnresolvableWildcard is returned when every byte value is used by a
	// literal, leaving none to stand for a wildcard.
	ErrUnresolvableWildcard = errors.New("no unused byte value left for wildcard")

	// ErrMalformedToken is returned for a text token that is neither hex nor '?'.
	ErrMalformedToken = errors.New("malformed token")
)
