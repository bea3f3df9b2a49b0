package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadBytes(t *testing.T) {
	r := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7})

	b, err := ReadBytes(r, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3, 4}, b)

	b, err = ReadBytes(r, 6, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{6, 7}, b)

	b, err = ReadBytes(r, -2, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1}, b)

	b, err = ReadBytes(r, 20, 4)
	require.NoError(t, err)
	require.Empty(t, b)
}
