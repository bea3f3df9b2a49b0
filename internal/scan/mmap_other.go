//go:build !unix

package scan

import "os"

// Map reads the named file into memory.
func Map(name string) (*Mapping, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}

func (m *Mapping) Close() error {
	m.data = nil
	m.closed = true
	return nil
}
