package util

import (
	"errors"
	"io"
)

// ReadBytes reads up to size bytes at off. A short read at the end of r is
// not an error; the returned slice is truncated instead.
func ReadBytes(r io.ReaderAt, off int64, size int) ([]byte, error) {
	if off < 0 {
		size += int(off)
		off = 0
	}
	if size <= 0 {
		return nil, nil
	}

	buf := make([]byte, size)
	n, err := r.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
