package byteio

import (
	"fmt"
	"io"

	"github.com/quaerus/deppth/errs"
)

// Read7BitInt reads a little-endian base-128 varint: each byte contributes its
// low 7 bits, with the high bit set on every byte but the last.
func Read7BitInt(r io.Reader) (uint64, error) {
	var result uint64

	for shift := uint(0); ; shift += 7 {
		if shift >= 64 {
			return 0, fmt.Errorf("%w: 7-bit varint too long", errs.ErrMalformedInput)
		}

		b, err := ReadU8(r)
		if err != nil {
			return 0, err
		}

		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
	}

	return result, nil
}

// Write7BitInt writes n as a little-endian base-128 varint.
func Write7BitInt(w io.Writer, n uint64) error {
	for n >= 0x80 {
		if err := WriteU8(w, byte(n)|0x80); err != nil {
			return err
		}
		n >>= 7
	}

	return WriteU8(w, byte(n))
}
