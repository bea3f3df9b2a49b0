package memsig

import (
	"bytes"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	sig := MustParse("90 5A ?? 99")

	tests := []struct {
		name string
		buf  []byte
		want int
	}{
		{name: "Middle", buf: []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x90, 0x5A, 0x10, 0x99}, want: 4},
		{name: "Start", buf: []byte{0x90, 0x5A, 0xFF, 0x99, 0x00}, want: 0},
		{name: "End", buf: []byte{0x00, 0x90, 0x5A, 0x00, 0x99}, want: 1},
		{name: "FirstOfMany", buf: []byte{0x90, 0x90, 0x5A, 0x01, 0x99, 0x90, 0x5A, 0x02, 0x99}, want: 1},
		{name: "Missing", buf: []byte{0x90, 0x5A, 0x10, 0x98}, want: 4},
		{name: "Truncated", buf: []byte{0x00, 0x90, 0x5A, 0x10}, want: 4},
		{name: "Short", buf: []byte{0x90, 0x5A}, want: 2},
		{name: "Empty", buf: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sig.Find(tt.buf))

			wantIdx := tt.want
			if wantIdx == len(tt.buf) {
				wantIdx = -1
			}
			require.Equal(t, wantIdx, sig.Index(tt.buf))
		})
	}
}

func TestFindEmptySignature(t *testing.T) {
	for _, sig := range []Signature{{}, New(nil, 0), MustParse(""), MustParse("   ")} {
		require.Equal(t, 0, sig.Find(nil))
		require.Equal(t, 0, sig.Find([]byte{}))
		require.Equal(t, 3, sig.Find([]byte{1, 2, 3}))
		require.Equal(t, -1, sig.Index([]byte{1, 2, 3}))
		require.False(t, sig.MatchAt([]byte{1, 2, 3}, 0))
	}
}

func TestFindLeadingWildcard(t *testing.T) {
	sig := MustParse("?? ?? 13")
	require.Equal(t, 0, sig.Index([]byte{0xAA, 0xBB, 0x13}))
	require.Equal(t, 2, sig.Index([]byte{0x13, 0x13, 0x00, 0x00, 0x13}))
	require.Equal(t, -1, sig.Index([]byte{0x13, 0x13}))

	all := MustParse("? ? ?")
	require.Equal(t, 0, all.Index([]byte{1, 2, 3, 4}))
	require.Equal(t, -1, all.Index([]byte{1, 2}))
}

func TestFindWildcardIsOneSided(t *testing.T) {
	// The wildcard value appearing in the searched bytes is not a wildcard.
	sig := MustParse("11 22")
	require.Equal(t, byte(0x00), sig.Wildcard())
	require.Equal(t, -1, sig.Index([]byte{0x11, 0x00}))
	require.Equal(t, -1, sig.Index([]byte{0x00, 0x22}))
}

func TestMatchAtBounds(t *testing.T) {
	sig := MustParse("01 02")
	buf := []byte{0x01, 0x02, 0x01}

	require.True(t, sig.MatchAt(buf, 0))
	require.False(t, sig.MatchAt(buf, 1))
	require.False(t, sig.MatchAt(buf, 2))
	require.False(t, sig.MatchAt(buf, 3))
	require.False(t, sig.MatchAt(buf, -1))
}

func TestIndexLiteralMatchesBytesIndex(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		buf := make([]byte, r.IntN(64))
		for i := range buf {
			buf[i] = byte(r.IntN(4))
		}
		needle := make([]byte, r.IntN(4)+1)
		for i := range needle {
			needle[i] = byte(r.IntN(4))
		}
		mask := bytes.Repeat([]byte{1}, len(needle))

		sig, err := NewMasked(needle, mask, ByteUnknown)
		require.NoError(t, err)
		require.Equal(t, bytes.Index(buf, needle), sig.Index(buf), "needle %x in %x", needle, buf)
	}
}

func TestIndexIgnoresWildcardPositions(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		buf := make([]byte, r.IntN(64)+8)
		for i := range buf {
			buf[i] = byte(r.IntN(256))
		}
		n := r.IntN(8) + 1
		off := r.IntN(len(buf) - n + 1)

		mask := make([]byte, n)
		for i := range mask {
			if r.IntN(3) > 0 {
				mask[i] = 'x'
			} else {
				mask[i] = TextUnknown
			}
		}
		sig, err := NewMaskedString(buf[off:off+n], string(mask), TextUnknown)
		require.NoError(t, err)

		// Changing the bytes under wildcards must not lose the match.
		mutated := bytes.Clone(buf)
		for i := range mask {
			if mask[i] == TextUnknown {
				mutated[off+i] ^= 0xFF
			}
		}

		got := sig.Index(mutated)
		require.GreaterOrEqual(t, got, 0)
		require.LessOrEqual(t, got, off)
		require.True(t, sig.MatchAt(mutated, got))
	}
}

func TestFindConcurrent(t *testing.T) {
	sig := MustParse("DE AD ?? EF")
	buf := append(bytes.Repeat([]byte{0xDE}, 4096), 0xDE, 0xAD, 0xBE, 0xEF)

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = sig.Index(buf)
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, 4096, got)
	}
}
