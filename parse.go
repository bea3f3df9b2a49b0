package memsig

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a Signature from IDA-style text: whitespace separated tokens,
// each either hex digits for one literal byte ("1", "01" and "001" are all
// 0x01) or a run of '?' for one wildcard position ("?", "??" and "???" are
// equivalent).
func Parse(s string) (Signature, error) {
	var (
		out      []byte
		literals []byte
		wild     []int
	)
	for tok := range strings.FieldsSeq(s) {
		if strings.Trim(tok, "?") == "" {
			wild = append(wild, len(out))
			out = append(out, 0)
			continue
		}

		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return Signature{}, fmt.Errorf("%w %q at position %d", ErrMalformedToken, tok, len(out))
		}
		out = append(out, byte(v))
		literals = append(literals, byte(v))
	}

	w, err := resolveHybrid(s, literals)
	if err != nil {
		return Signature{}, fmt.Errorf("pattern %q: %w", s, err)
	}
	for _, i := range wild {
		out[i] = w
	}

	return Signature{pattern: out, wildcard: w}, nil
}

// MustParse is like Parse but panics on error. It is meant for signatures
// known at compile time.
func MustParse(s string) Signature {
	sig, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("memsig: Parse(%q): %v", s, err))
	}

	return sig
}
