package byteio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteU8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteU8(&buf, 0xAB))

	got, err := ReadU8(&buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), got)
}

func TestReadWriteI32BE(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteI32BE(&buf, -1))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, buf.Bytes())

	got, err := ReadI32BE(&buf)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)
}

func TestReadWriteF32BE(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteF32BE(&buf, 3.5))

	got, err := ReadF32BE(&buf)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), got)
}

func TestWriteStringTooLong(t *testing.T) {
	var buf bytes.Buffer
	err := WriteString(&buf, string(make([]byte, 256)))
	assert.Error(t, err)
}

func TestReadWriteString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "Packages\\Menus"))

	got, err := ReadString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Packages\\Menus", got)
}

// S4: write_big_string("ab") emits 00 00 00 02 61 62
func TestWriteBigString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBigString(&buf, "ab"))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x02, 0x61, 0x62}, buf.Bytes())
}

func TestReadBigStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBigString(&buf, "hello atlas"))

	got, err := ReadBigString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "hello atlas", got)
}

// S3: write_7bit_int(300) emits AC 02; read_7bit_int on AC 02 returns 300
func TestSevenBitIntScenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write7BitInt(&buf, 300))
	assert.Equal(t, []byte{0xAC, 0x02}, buf.Bytes())

	got, err := Read7BitInt(bytes.NewReader([]byte{0xAC, 0x02}))
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got)
}

func TestSevenBitIntRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 16384, 1 << 40} {
		var buf bytes.Buffer
		require.NoError(t, Write7BitInt(&buf, v))

		got, err := Read7BitInt(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
