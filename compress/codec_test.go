package compress

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

func TestByCodeAndByName(t *testing.T) {
	for _, tc := range []struct {
		code format.CompressionType
		name string
	}{
		{format.CompressionUncompressed, "uncompressed"},
		{format.CompressionLZ4, "lz4"},
		{format.CompressionLZF, "lzf"},
		{format.CompressionLZX, "lzx"},
	} {
		byCode, err := ByCode(tc.code)
		require.NoError(t, err)
		assert.Equal(t, tc.name, byCode.Name())

		byName, err := ByName(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.code, byName.TypeCode())
	}
}

func TestByCodeUnknown(t *testing.T) {
	_, err := ByCode(0x99)
	assert.Error(t, err)
}

func TestUncompressedRoundTrip(t *testing.T) {
	codec := UncompressedCodec{}
	chunk := bytes.Repeat([]byte{0x42}, 100)

	var raw bytes.Buffer
	require.NoError(t, codec.WriteChunk(&raw, chunk))

	got, err := codec.ReadChunk(&raw, len(chunk))
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestLZ4RoundTripAndFraming(t *testing.T) {
	codec := NewLZ4Codec()
	chunk := append(bytes.Repeat([]byte("hello deppth "), 50), make([]byte, 32)...)

	var raw bytes.Buffer
	require.NoError(t, codec.WriteChunk(&raw, chunk))

	frame := raw.Bytes()
	require.GreaterOrEqual(t, len(frame), 5)
	assert.Equal(t, byte(0x01), frame[0], "compressed frame must start with flag 0x01")

	length := int32(frame[1])<<24 | int32(frame[2])<<16 | int32(frame[3])<<8 | int32(frame[4])
	assert.Equal(t, len(frame)-5, int(length), "length prefix must equal payload length")

	got, err := codec.ReadChunk(&raw, len(chunk))
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestLZ4ShortOutputIsZeroPadded(t *testing.T) {
	codec := NewLZ4Codec()
	chunk := []byte("tiny")

	var raw bytes.Buffer
	require.NoError(t, codec.WriteChunk(&raw, chunk))

	got, err := codec.ReadChunk(&raw, 16)
	require.NoError(t, err)
	require.Len(t, got, 16)
	assert.Equal(t, chunk, got[:len(chunk)])
	assert.Equal(t, make([]byte, 16-len(chunk)), got[len(chunk):])
}

func TestLZ4WithLevelRoundTrip(t *testing.T) {
	codec := NewLZ4Codec(WithLevel(lz4.Level3))
	chunk := append(bytes.Repeat([]byte("hello deppth "), 50), make([]byte, 32)...)

	var raw bytes.Buffer
	require.NoError(t, codec.WriteChunk(&raw, chunk))

	got, err := codec.ReadChunk(&raw, len(chunk))
	require.NoError(t, err)
	assert.Equal(t, chunk, got, "a non-default HC level must still round-trip correctly")
}

func TestLZFRoundTrip(t *testing.T) {
	codec := NewLZFCodec()
	chunk := append(bytes.Repeat([]byte("transistor pyre "), 40), make([]byte, 16)...)

	var raw bytes.Buffer
	require.NoError(t, codec.WriteChunk(&raw, chunk))

	got, err := codec.ReadChunk(&raw, len(chunk))
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestLZXUnimplemented(t *testing.T) {
	codec := NewLZXCodec()

	var raw bytes.Buffer
	err := codec.WriteChunk(&raw, []byte("anything"))
	assert.ErrorIs(t, err, errs.ErrNotImplemented)
}
