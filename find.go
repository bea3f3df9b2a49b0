package memsig

import "bytes"

// MatchAt reports whether the Signature matches b starting at off. A wildcard
// in the pattern matches any byte; the wildcard value in b is an ordinary byte.
func (s Signature) MatchAt(b []byte, off int) bool {
	if len(s.pattern) == 0 || off < 0 || off+len(s.pattern) > len(b) {
		return false
	}

	for i, pb := range s.pattern {
		if pb != s.wildcard && b[off+i] != pb {
			return false
		}
	}

	return true
}

// Index returns the offset of the first match in b, or -1.
func (s Signature) Index(b []byte) int {
	n := len(s.pattern)
	if n == 0 || len(b) < n {
		return -1
	}

	last := len(b) - n
	first := s.pattern[0]
	anchored := first != s.wildcard
	for i := 0; i <= last; i++ {
		if anchored {
			j := bytes.IndexByte(b[i:last+1], first)
			if j < 0 {
				return -1
			}
			i += j
		}
		if s.MatchAt(b, i) {
			return i
		}
	}

	return -1
}

// Find returns the offset of the first match in b, or len(b) when there is
// none.
func (s Signature) Find(b []byte) int {
	if i := s.Index(b); i >= 0 {
		return i
	}

	return len(b)
}
