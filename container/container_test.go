package container

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/format"
)

func tempPackagePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.pkg")
}

func TestHeaderRoundTrip(t *testing.T) {
	path := tempPackagePath(t)

	w, err := Create(path, ModeExclusive, compress.UncompressedCodec{}, format.VersionHades)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "uncompressed", r.Compressor().Name())
	assert.Equal(t, format.VersionHades, r.Version())
	assert.Equal(t, int64(4), r.Tell())
}

func TestWriteReadSingleChunk(t *testing.T) {
	path := tempPackagePath(t)

	w, err := Create(path, ModeExclusive, compress.UncompressedCodec{}, format.VersionPyreTransistor)
	require.NoError(t, err)

	payload := []byte("hello deppth")
	require.NoError(t, w.Write(payload))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	got := make([]byte, len(payload))
	n, err := r.Read(got)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, got)

	_, err = r.NextEntryByte()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSeekRevisit(t *testing.T) {
	path := tempPackagePath(t)

	w, err := Create(path, ModeExclusive, compress.UncompressedCodec{}, format.VersionHades)
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte{0xAA}))
	require.NoError(t, w.Write([]byte{0xBB}))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Seek(4)
	require.NoError(t, err)

	b, err := r.NextEntryByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), b)

	b, err = r.NextEntryByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xBB), b)

	_, err = r.NextEntryByte()
	assert.ErrorIs(t, err, io.EOF)

	_, err = r.Seek(4)
	require.NoError(t, err)

	b, err = r.NextEntryByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), b, "re-seeking to the same position must reproduce the same entry byte")
}

func TestLZ4MultiChunkRoundTrip(t *testing.T) {
	path := tempPackagePath(t)

	w, err := Create(path, ModeExclusive, compress.NewLZ4Codec(), format.VersionHades)
	require.NoError(t, err)

	// Force a chunk rollover: the first chunk's window is ChunkSize-4 bytes.
	big := make([]byte, format.ChunkSize)
	for i := range big {
		big[i] = byte(i)
	}
	require.NoError(t, w.Write(big[:100]))
	require.NoError(t, w.Write(big[100:format.ChunkSize-10]))
	require.NoError(t, w.Write([]byte("spillover")))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	first := make([]byte, format.ChunkSize-4)
	_, err = r.Read(first)
	require.NoError(t, err)
	assert.Equal(t, big[:format.ChunkSize-10], first[:format.ChunkSize-10])
	assert.Equal(t, byte(format.SentinelEndOfChunk), first[format.ChunkSize-10])
	assert.Equal(t, 0, r.virtualChunk, "the whole first window is consumed but rollover hasn't been triggered yet")

	rest := make([]byte, len("spillover"))
	_, err = r.Read(rest)
	require.NoError(t, err)
	assert.Equal(t, "spillover", string(rest))
	assert.Equal(t, 1, r.virtualChunk, "reading past the first window must roll into chunk 1")
}
