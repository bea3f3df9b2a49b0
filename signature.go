package memsig

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/s-hammon/p"
)

// Default unknown markers for masks.
const (
	TextUnknown byte = '?'
	ByteUnknown byte = 0
)

// Signature is an immutable byte pattern in which every position holding the
// wildcard byte matches any byte. The zero value is an empty Signature.
type Signature struct {
	pattern  []byte
	wildcard byte
}

// New builds a Signature from pattern, treating every byte equal to wildcard
// as a wildcard position. The caller is responsible for wildcard not being
// needed as a literal.
func New(pattern []byte, wildcard byte) Signature {
	return Signature{pattern: bytes.Clone(pattern), wildcard: wildcard}
}

// NewMasked builds a Signature from pattern and a parallel mask. Positions
// whose mask entry equals unknown become wildcards; all others are literals.
func NewMasked(pattern, mask []byte, unknown byte) (Signature, error) {
	if len(pattern) != len(mask) {
		return Signature{}, fmt.Errorf("%w: pattern has %d bytes, mask has %d", ErrLengthMismatch, len(pattern), len(mask))
	}

	w, err := resolveMasked(pattern, mask, unknown)
	if err != nil {
		return Signature{}, fmt.Errorf("masked pattern of %d bytes: %w", len(pattern), err)
	}

	out := make([]byte, len(pattern))
	for i, b := range pattern {
		if mask[i] == unknown {
			out[i] = w
		} else {
			out[i] = b
		}
	}

	return Signature{pattern: out, wildcard: w}, nil
}

// NewMaskedString is NewMasked with a text mask such as "xx??x".
func NewMaskedString(pattern []byte, mask string, unknown byte) (Signature, error) {
	return NewMasked(pattern, []byte(mask), unknown)
}

func (s Signature) Len() int {
	return len(s.pattern)
}

// Wildcard returns the byte value standing for "any byte".
func (s Signature) Wildcard() byte {
	return s.wildcard
}

// Bytes returns a copy of the pattern with wildcard positions set to Wildcard.
func (s Signature) Bytes() []byte {
	return bytes.Clone(s.pattern)
}

func (s Signature) IsWildcard(i int) bool {
	return s.pattern[i] == s.wildcard
}

// String formats the Signature in IDA style, e.g. "90 5A ?? 99".
func (s Signature) String() string {
	parts := make([]string, len(s.pattern))
	for i, b := range s.pattern {
		if b == s.wildcard {
			parts[i] = "??"
		} else {
			parts[i] = p.Format("%02X", b)
		}
	}

	return strings.Join(parts, " ")
}
