// Package imageio decodes the XNB-wrapped texture payloads carried inside
// texture and texture3d entries into standard library images, and exports
// them to PNG, JPEG, or BMP.
package imageio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/errs"
)

const (
	xnbFormatBGRA = 0
	xnbFormatDXT5 = 6
	xnbFormatBC7  = 28
)

// DecodeXNB unwraps an XNB container and decodes the texture it carries into
// a standard library image.
func DecodeXNB(data []byte) (image.Image, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	if _, err := io.CopyN(io.Discard, r, 4); err != nil {
		return nil, fmt.Errorf("%w: read xnb magic: %v", errs.ErrMalformedInput, err)
	}

	version, err := byteio.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if version != 5 && version != 6 {
		return nil, fmt.Errorf("%w: xnb version %d", errs.ErrUnsupportedVersion, version)
	}

	flags, err := byteio.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if flags != 0 {
		return nil, fmt.Errorf("%w: compressed xnb payloads", errs.ErrNotImplemented)
	}

	if _, err := io.CopyN(io.Discard, r, 4); err != nil { // total file length, unused
		return nil, fmt.Errorf("%w: read xnb length: %v", errs.ErrMalformedInput, err)
	}

	if version == 5 {
		if err := skipXNBv5Header(r); err != nil {
			return nil, err
		}
	}

	imgFormat, err := readIntLE(r)
	if err != nil {
		return nil, err
	}

	width, err := readIntLE(r)
	if err != nil {
		return nil, err
	}

	height, err := readIntLE(r)
	if err != nil {
		return nil, err
	}

	if _, err := readIntLE(r); err != nil { // mip level, always 1
		return nil, err
	}

	numBytes, err := readIntLE(r)
	if err != nil {
		return nil, err
	}

	imgBytes := make([]byte, numBytes)
	if _, err := io.ReadFull(r, imgBytes); err != nil {
		return nil, fmt.Errorf("%w: read xnb image bytes: %v", errs.ErrMalformedInput, err)
	}

	switch imgFormat {
	case xnbFormatBGRA:
		return decodeBGRA(int(width), int(height), imgBytes)
	case xnbFormatDXT5:
		return decodeDXT5(int(width), int(height), imgBytes)
	case xnbFormatBC7:
		return nil, fmt.Errorf("%w: BC7-compressed textures", errs.ErrNotImplemented)
	default:
		return nil, fmt.Errorf("%w: xnb image format %d", errs.ErrUnsupportedFormat, imgFormat)
	}
}

// skipXNBv5Header consumes the version-5-only reader type table and two
// trailing 7-bit-encoded integers that precede the actual image header.
func skipXNBv5Header(r *bufio.Reader) error {
	num, err := byteio.Read7BitInt(r)
	if err != nil {
		return err
	}

	for i := uint64(0); i < num; i++ {
		if _, err := byteio.ReadString(r); err != nil {
			return err
		}
		if _, err := readIntLE(r); err != nil {
			return err
		}
	}

	if _, err := byteio.Read7BitInt(r); err != nil {
		return err
	}
	if _, err := byteio.Read7BitInt(r); err != nil {
		return err
	}

	return nil
}

func readIntLE(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: read little-endian int: %v", errs.ErrMalformedInput, err)
	}

	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func decodeBGRA(width, height int, data []byte) (image.Image, error) {
	want := width * height * 4
	if len(data) < want {
		return nil, fmt.Errorf("%w: BGRA payload too short: got %d want %d", errs.ErrMalformedInput, len(data), want)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		b := data[i*4+0]
		g := data[i*4+1]
		r := data[i*4+2]
		a := data[i*4+3]
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}

	return img, nil
}

// Export writes img to path; the extension selects the format (.png, .jpg,
// .jpeg, .bmp).
func Export(path string, img image.Image) error {
	ext := formatFromExt(path)
	if ext == "" {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case "png":
		return png.Encode(f, img)
	case "jpg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case "bmp":
		return bmp.Encode(f, img)
	}

	return fmt.Errorf("%w: %s", errs.ErrUnsupportedFormat, path)
}

func formatFromExt(path string) string {
	switch {
	case hasSuffixFold(path, ".png"):
		return "png"
	case hasSuffixFold(path, ".jpg"), hasSuffixFold(path, ".jpeg"):
		return "jpg"
	case hasSuffixFold(path, ".bmp"):
		return "bmp"
	default:
		return ""
	}
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}

	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		c1, c2 := tail[i], suffix[i]
		if 'A' <= c1 && c1 <= 'Z' {
			c1 += 'a' - 'A'
		}
		if 'A' <= c2 && c2 <= 'Z' {
			c2 += 'a' - 'A'
		}
		if c1 != c2 {
			return false
		}
	}

	return true
}
