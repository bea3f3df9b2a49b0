//go:build unix

package scan

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// Map memory-maps the named file read-only.
func Map(name string) (*Mapping, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{}, nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("mmap: file %v is too large", name)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", name, err)
	}

	m := &Mapping{data: data}
	runtime.SetFinalizer(m, (*Mapping).Close)
	return m, nil
}

// Close unmaps the file.
func (m *Mapping) Close() error {
	if m.data == nil {
		m.closed = true
		return nil
	}

	data := m.data
	m.data = nil
	m.closed = true
	runtime.SetFinalizer(m, nil)
	return unix.Munmap(data)
}
