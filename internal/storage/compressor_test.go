package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCompressor_RoundTrip(t *testing.T) {
	comp, err := NewSnapshotCompressor()
	require.NoError(t, err)
	defer comp.Close()

	input := bytes.Repeat([]byte(`{"2026-10-18":3}`), 200)
	compressed, err := comp.Compress(input)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(input))
	assert.True(t, bytes.HasPrefix(compressed, zstdMagic))

	out, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestSnapshotCompressor_PlainDataIsNotCompressed(t *testing.T) {
	comp, err := NewSnapshotCompressor()
	require.NoError(t, err)
	defer comp.Close()

	_, err = comp.Decompress([]byte(`{"mindful_streak":null}`))
	assert.ErrorIs(t, err, ErrNotCompressed)
}

func TestSnapshotCompressor_DamagedFrame(t *testing.T) {
	comp, err := NewSnapshotCompressor()
	require.NoError(t, err)
	defer comp.Close()

	compressed, err := comp.Compress(bytes.Repeat([]byte(`{"2026-10-18":3}`), 200))
	require.NoError(t, err)

	_, err = comp.Decompress(compressed[:len(compressed)/2])
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotCompressed)
}

func TestSnapshotCompressor_CloseTwice(t *testing.T) {
	comp, err := NewSnapshotCompressor()
	require.NoError(t, err)

	comp.Close()
	assert.NotPanics(t, comp.Close)
}
