package imageio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDXT5SolidBlock(t *testing.T) {
	// A single 4x4 block: alpha0=alpha1=255 (flat palette), color c0=c1=pure
	// red in RGB565 (0xF800), indices all zero so every texel picks palette[0].
	block := []byte{
		255, 255, 0, 0, 0, 0, 0, 0, // alpha: a0, a1, then 6 index bytes (all zero)
		0x00, 0xF8, 0x00, 0xF8, 0, 0, 0, 0, // color: c0=c1=0xF800, indices all zero
	}

	img, err := decodeDXT5(4, 4, block)
	require.NoError(t, err)

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Greater(t, r, uint32(0))
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
}
