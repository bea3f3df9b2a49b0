package scan

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
)

// ELFRegions returns the allocated, file-backed sections of an ELF image as
// regions keyed by file offset, with Addr set to the section's load address.
func ELFRegions(r io.ReaderAt) ([]Region, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELF file: %w", err)
	}
	defer f.Close()

	var regs []Region
	for _, sec := range f.Sections {
		if sec.Flags&elf.SHF_ALLOC == 0 || sec.Type == elf.SHT_NOBITS || sec.Size == 0 {
			continue
		}

		regs = append(regs, Region{
			Start: sec.Offset,
			End:   sec.Offset + sec.Size,
			Addr:  sec.Addr,
			Name:  sec.Name,
		})
	}

	if len(regs) == 0 {
		return nil, errors.New("no loadable sections found")
	}

	return regs, nil
}
