package scan

import (
	"errors"
	"fmt"
	"io"

	"github.com/s-hammon/memsig"
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	closed bool
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

func (m *Mapping) Len() int {
	return len(m.data)
}

// ReadAt implements the io.ReaderAt interface.
func (m *Mapping) ReadAt(b []byte, off int64) (int, error) {
	if m.closed {
		return 0, errors.New("mmap: closed")
	}
	if off < 0 || int64(len(m.data)) < off {
		return 0, fmt.Errorf("mmap: invalid ReadAt offset %d", off)
	}

	n := copy(b, m.data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

// Find searches the mapped bytes of each region in order, without copying,
// and returns the offset of the first match.
func (m *Mapping) Find(regions []Region, sig memsig.Signature) (uint64, error) {
	for _, r := range regions {
		end := min(r.End, uint64(len(m.data)))
		if r.Start >= end {
			continue
		}
		if i := sig.Index(m.data[r.Start:end]); i >= 0 {
			return r.Start + uint64(i), nil
		}
	}

	return 0, ErrNotFound
}
