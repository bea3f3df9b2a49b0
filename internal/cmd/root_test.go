package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/s-hammon/memsig/internal/scan"
	"github.com/s-hammon/p"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeImage(t *testing.T) string {
	t.Helper()

	data := bytes.Repeat([]byte{0xCC}, 256)
	copy(data[0x40:], []byte{0x90, 0x5A, 0x10, 0x99})
	copy(data[0x80:], []byte{0x11, 0x12, 0x13, 0x14})

	name := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(name, data, 0o644))
	return name
}

func TestParseCommand(t *testing.T) {
	code, out, _ := run(t, "parse", "1 ? 13 14")
	require.Equal(t, 0, code)
	require.Equal(t, "pattern:  01 ?? 13 14\nlength:   4\nwildcard: 0x00\n", out)

	code, out, _ = run(t, "parse", "--mask", "x?xx", "11 12 13 14")
	require.Equal(t, 0, code)
	require.Contains(t, out, "pattern:  11 ?? 13 14")

	code, out, _ = run(t, "parse", "--wildcard", "12", "11121314")
	require.Equal(t, 0, code)
	require.Contains(t, out, "wildcard: 0x12")

	code, _, errOut := run(t, "parse", "90 5G")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "malformed token")

	code, _, errOut = run(t, "parse", "--mask", "x?x", "11 12 13 14")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "length mismatch")

	code, _, _ = run(t, "parse", "--mask", "x", "--wildcard", "00", "11")
	require.Equal(t, 1, code)
}

func TestFindCommand(t *testing.T) {
	name := writeImage(t)

	code, out, _ := run(t, "find", "90 5A ?? 99", name)
	require.Equal(t, 0, code)
	require.Equal(t, "0x40\n", out)

	code, out, _ = run(t, "find", "--mask", "x?xx", "11 FF 13 14", name)
	require.Equal(t, 0, code)
	require.Equal(t, "0x80\n", out)

	code, out, _ = run(t, "find", "-C", "2", "90 5A ?? 99", name)
	require.Equal(t, 0, code)
	require.Contains(t, out, "0x40\n")
	require.Contains(t, out, "cc cc 90 5a 10 99 cc cc")

	code, _, errOut := run(t, "find", "90 5A ?? 98", name)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, scan.ErrNotFound.Error())

	code, _, errOut = run(t, "find", "90", filepath.Join(t.TempDir(), "missing"))
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "no such file")

	code, _, errOut = run(t, "find", "--section", ".text", "90", name)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "ELF")
}

func TestFindCommandSection(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("test binary is not ELF")
	}

	exe, err := os.Executable()
	require.NoError(t, err)
	f, err := os.Open(exe)
	require.NoError(t, err)
	defer f.Close()

	regions, err := scan.ELFRegions(f)
	require.NoError(t, err)
	text, ok := scan.FindRegion(regions, ".text")
	require.True(t, ok)

	head := make([]byte, 24)
	_, err = f.ReadAt(head, int64(text.Start))
	require.NoError(t, err)

	toks := make([]string, len(head))
	for i, b := range head {
		toks[i] = p.Format("%02X", b)
	}
	toks[1] = "??"

	code, out, errOut := run(t, "find", "--section", ".text", strings.Join(toks, " "), exe)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "(.text vaddr 0x")

	code, _, errOut = run(t, "find", "--section", ".nope", "90", exe)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, `section ".nope" not found`)
}

func TestScanCommand(t *testing.T) {
	name := writeImage(t)
	catalog := filepath.Join(t.TempDir(), "sigs.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`signatures:
  - name: loop
    pattern: "90 5A ?? 99"
    offset: 2
  - name: table
    bytes: "11 00 13 14"
    mask: "x?xx"
`), 0o644))

	code, out, errOut := run(t, "scan", "--catalog", catalog, "--chunk", "16", name)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "loop   0x42\ntable  0x80\n", out)

	require.NoError(t, os.WriteFile(catalog, []byte(`signatures:
  - name: loop
    pattern: "90 5A ?? 99"
  - name: gone
    pattern: "DE AD BE EF"
`), 0o644))

	code, out, errOut = run(t, "scan", "-c", catalog, name)
	require.Equal(t, 1, code)
	require.Contains(t, out, "gone  not found")
	require.Contains(t, errOut, "1 of 2 signatures not found")

	code, _, errOut = run(t, "scan", name)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "catalog")
}

func TestVerboseLogging(t *testing.T) {
	name := writeImage(t)

	code, _, errOut := run(t, "find", "90 5A ?? 99", name)
	require.Equal(t, 0, code)
	require.Empty(t, errOut)

	code, _, errOut = run(t, "--verbose", "find", "90 5A ?? 99", name)
	require.Equal(t, 0, code)
	require.Contains(t, errOut, "level=INFO msg=searching")
}
