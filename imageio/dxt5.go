package imageio

import (
	"fmt"
	"image"

	"github.com/quaerus/deppth/errs"
)

// decodeDXT5 decodes a block-compressed S3TC/DXT5 (BC3) payload into an
// NRGBA image. Each 4x4 pixel block is encoded as 8 bytes of interpolated
// alpha followed by 8 bytes of interpolated RGB565 color.
func decodeDXT5(width, height int, data []byte) (image.Image, error) {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	want := blocksWide * blocksHigh * 16

	if len(data) < want {
		return nil, fmt.Errorf("%w: DXT5 payload too short: got %d want %d", errs.ErrMalformedInput, len(data), want)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			block := data[(by*blocksWide+bx)*16 : (by*blocksWide+bx)*16+16]

			alphas := decodeDXT5AlphaBlock(block[:8])
			colors := decodeDXT1ColorBlock(block[8:16])

			for py := 0; py < 4; py++ {
				y := by*4 + py
				if y >= height {
					continue
				}

				for px := 0; px < 4; px++ {
					x := bx*4 + px
					if x >= width {
						continue
					}

					idx := py*4 + px
					c := colors[idx]
					a := alphas[idx]

					off := img.PixOffset(x, y)
					img.Pix[off+0] = c[0]
					img.Pix[off+1] = c[1]
					img.Pix[off+2] = c[2]
					img.Pix[off+3] = a
				}
			}
		}
	}

	return img, nil
}

func decodeDXT5AlphaBlock(block []byte) [16]byte {
	a0, a1 := block[0], block[1]

	var palette [8]byte
	palette[0], palette[1] = a0, a1

	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			palette[1+i] = byte((int(a0)*(7-i) + int(a1)*i) / 7)
		}
	} else {
		for i := 1; i <= 4; i++ {
			palette[1+i] = byte((int(a0)*(5-i) + int(a1)*i) / 5)
		}
		palette[6] = 0
		palette[7] = 255
	}

	var bits uint64
	for i := 0; i < 6; i++ {
		bits |= uint64(block[2+i]) << (8 * i)
	}

	var out [16]byte
	for i := 0; i < 16; i++ {
		idx := (bits >> (3 * i)) & 0x7
		out[i] = palette[idx]
	}

	return out
}

// decodeDXT1ColorBlock decodes the shared RGB565-interpolated color half used
// by both DXT1 and DXT5 blocks, always in 4-color (non-punchthrough) mode
// since DXT5 never uses DXT1's 1-bit alpha variant.
func decodeDXT1ColorBlock(block []byte) [16][3]byte {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8

	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)

	var palette [4][3]byte
	palette[0] = [3]byte{r0, g0, b0}
	palette[1] = [3]byte{r1, g1, b1}
	palette[2] = [3]byte{
		byte((2*int(r0) + int(r1)) / 3),
		byte((2*int(g0) + int(g1)) / 3),
		byte((2*int(b0) + int(b1)) / 3),
	}
	palette[3] = [3]byte{
		byte((int(r0) + 2*int(r1)) / 3),
		byte((int(g0) + 2*int(g1)) / 3),
		byte((int(b0) + 2*int(b1)) / 3),
	}

	indices := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24

	var out [16][3]byte
	for i := 0; i < 16; i++ {
		idx := (indices >> (2 * i)) & 0x3
		out[i] = palette[idx]
	}

	return out
}

func rgb565(c uint16) (r, g, b byte) {
	r = byte((c>>11)&0x1f) << 3
	g = byte((c>>5)&0x3f) << 2
	b = byte(c&0x1f) << 3

	return r, g, b
}
