package entry

import (
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/format"
)

// BinkEntry references an external Bink video asset. It carries no payload
// of its own, so it cannot be exported to or imported from anything but the
// raw .entry representation.
type BinkEntry struct {
	EntryName string
	IsAlpha   bool
	Scaling   float32
}

func (b *BinkEntry) TypeCode() format.EntryType { return format.EntryBink }
func (b *BinkEntry) Name() string               { return b.EntryName }
func (b *BinkEntry) DisplayName() string        { return displayName(b.TypeCode(), shortName(b.EntryName)) }

func (b *BinkEntry) ReadFrom(stream io.Reader, _ bool, _ format.Version) error {
	first, err := byteio.ReadU8(stream)
	if err != nil {
		return err
	}

	b.IsAlpha = first == 0x01
	b.Scaling = 1.0

	if first == 0xFF {
		num, err := byteio.ReadI32BE(stream)
		if err != nil {
			return err
		}

		if _, err := byteio.ReadU8(stream); err != nil {
			return err
		}

		if num > 0 {
			scaling, err := byteio.ReadF32BE(stream)
			if err != nil {
				return err
			}
			b.Scaling = scaling
		}
	}

	name, err := byteio.ReadString(stream)
	if err != nil {
		return err
	}
	b.EntryName = name

	return nil
}

// WriteTo is a no-op: the original toolchain never regenerates bink entries,
// only reads them, and the fields recovered from ReadFrom don't round-trip
// losslessly (the first-byte/scaling encoding is underspecified for values
// this codec never had to produce).
func (b *BinkEntry) WriteTo(_ io.Writer) error {
	return nil
}
