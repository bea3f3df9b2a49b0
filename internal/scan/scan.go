package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/s-hammon/memsig"
	"github.com/s-hammon/p"
)

const DefaultChunkSize = 1 << 20

var ErrNotFound = errors.New("signature not found")

// Region is the byte range [Start, End) of an image. Addr is the address the
// range is loaded at, or 0 when unknown.
type Region struct {
	Start, End uint64
	Addr       uint64
	Name       string
}

func (r Region) Size() uint64 {
	return r.End - r.Start
}

// VirtualAddress maps an offset inside r to its load address.
func (r Region) VirtualAddress(off uint64) uint64 {
	if r.Addr == 0 {
		return off
	}
	return r.Addr + (off - r.Start)
}

func (r Region) Contains(off uint64) bool {
	return off >= r.Start && off < r.End
}

// FileRegion covers a whole file of the given size.
func FileRegion(size int64) []Region {
	return []Region{{Start: 0, End: uint64(size), Name: "file"}}
}

// FindRegion returns the region called name.
func FindRegion(regions []Region, name string) (Region, bool) {
	for _, r := range regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Scanner reads regions in chunks and searches each chunk for a signature.
// Consecutive chunks overlap by one byte less than the signature, so matches
// crossing a chunk boundary are still found. Matches never span regions.
type Scanner struct {
	ChunkSize int
	Logger    *slog.Logger
}

func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{ChunkSize: DefaultChunkSize, Logger: logger}
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// ScanRegions scans with a default Scanner.
func ScanRegions(ctx context.Context, r io.ReaderAt, regions []Region, sig memsig.Signature) (uint64, error) {
	return New(nil).Scan(ctx, r, regions, sig)
}

// Scan returns the offset of the first match of sig in regions, visited in
// order. Chunks that fail to read are skipped.
func (s *Scanner) Scan(ctx context.Context, r io.ReaderAt, regions []Region, sig memsig.Signature) (uint64, error) {
	if sig.Len() == 0 {
		return 0, ErrNotFound
	}

	chunk := max(s.ChunkSize, sig.Len())
	for _, reg := range regions {
		off, err := s.scanRegion(ctx, r, reg, sig, chunk)
		if err == nil {
			s.logger().Debug("signature found", "region", reg.Name, "offset", p.Format("0x%x", off))
			return off, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return 0, err
		}
	}

	return 0, ErrNotFound
}

func (s *Scanner) scanRegion(ctx context.Context, r io.ReaderAt, reg Region, sig memsig.Signature, chunk int) (uint64, error) {
	overlap := sig.Len() - 1
	size := reg.Size()
	carry := []byte{}

	s.logger().Debug("scanning region", "region", reg.Name, "start", p.Format("0x%x", reg.Start), "size", size)
	for off := uint64(0); off < size; {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		toRead := int(min(size-off, uint64(chunk)))
		buf := make([]byte, len(carry)+toRead)
		copy(buf, carry)

		n, err := r.ReadAt(buf[len(carry):], int64(reg.Start+off))
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger().Debug("skipping unreadable chunk", "region", reg.Name, "offset", p.Format("0x%x", reg.Start+off), "err", err)
			off += uint64(toRead)
			carry = carry[:0]
			continue
		}

		buf = buf[:len(carry)+n]
		if i := sig.Index(buf); i >= 0 {
			return reg.Start + off + uint64(i) - uint64(len(carry)), nil
		}
		if n < toRead {
			break
		}

		keep := min(overlap, len(buf))
		carry = append(carry[:0], buf[len(buf)-keep:]...)
		off += uint64(toRead)
	}

	return 0, ErrNotFound
}
