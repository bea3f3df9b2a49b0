package memsig

import "math/bits"

// byteSet records which of the 256 byte values are present.
type byteSet [4]uint64

func (s *byteSet) add(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// free returns the lowest byte value not in the set.
func (s *byteSet) free() (byte, error) {
	for i, w := range s {
		if w != ^uint64(0) {
			return byte(i*64 + bits.TrailingZeros64(^w)), nil
		}
	}

	return 0, ErrUnresolvableWildcard
}

// resolveMasked picks a wildcard from the bytes whose mask entry is not unknown.
func resolveMasked(pattern, mask []byte, unknown byte) (byte, error) {
	var set byteSet
	for i, b := range pattern {
		if mask[i] != unknown {
			set.add(b)
		}
	}

	return set.free()
}

// resolveHybrid marks every raw character of the text other than ' ' and '?',
// then the parsed literals. The raw characters are hex digits, so this can
// rule out values that never occur as literals.
func resolveHybrid(raw string, literals []byte) (byte, error) {
	var set byteSet
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c != ' ' && c != '?' {
			set.add(c)
		}
	}
	for _, b := range literals {
		set.add(b)
	}

	return set.free()
}
