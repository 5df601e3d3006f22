package imageio

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildXNB(t *testing.T, version byte, format, width, height int32, imgBytes []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("XNBw")
	buf.WriteByte(version)
	buf.WriteByte(0) // flags

	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], 0)
	buf.Write(le[:]) // total length, unused

	writeLE := func(v int32) {
		binary.LittleEndian.PutUint32(le[:], uint32(v))
		buf.Write(le[:])
	}

	writeLE(format)
	writeLE(width)
	writeLE(height)
	writeLE(1) // mip level
	writeLE(int32(len(imgBytes)))
	buf.Write(imgBytes)

	return buf.Bytes()
}

func TestDecodeXNBBGRA(t *testing.T) {
	// Two pixels: opaque red, opaque green, stored BGRA.
	imgBytes := []byte{
		0x00, 0x00, 0xFF, 0xFF, // B G R A -> red
		0x00, 0xFF, 0x00, 0xFF, // B G R A -> green
	}
	data := buildXNB(t, 6, xnbFormatBGRA, 2, 1, imgBytes)

	img, err := DecodeXNB(data)
	require.NoError(t, err)

	nr, ng, nb, na := img.At(0, 0).RGBA()
	assert.Greater(t, nr, uint32(0))
	assert.Equal(t, uint32(0), ng)
	assert.Equal(t, uint32(0), nb)
	assert.Equal(t, uint32(0xffff), na)

	nr2, ng2, _, _ := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), nr2)
	assert.Greater(t, ng2, uint32(0))
}

func TestExportPNG(t *testing.T) {
	data := buildXNB(t, 6, xnbFormatBGRA, 1, 1, []byte{0x10, 0x20, 0x30, 0xFF})
	img, err := DecodeXNB(data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, Export(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
