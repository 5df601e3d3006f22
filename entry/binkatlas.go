package entry

import (
	"fmt"
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// BinkAtlasEntry plays the same manifest-pairing role for BinkEntry that
// AtlasEntry plays for TextureEntry, but a bink asset has no spritesheet to
// map, so the data amounts to a single bounding rectangle and scale factor.
type BinkAtlasEntry struct {
	Size         int32
	Version      int32
	EntryName    string
	Width        int32
	Height       int32
	OriginalSize Point
	Scaling      float32
}

func (b *BinkAtlasEntry) TypeCode() format.EntryType { return format.EntryBinkAtlas }
func (b *BinkAtlasEntry) Name() string               { return b.EntryName }
func (b *BinkAtlasEntry) DisplayName() string        { return displayName(b.TypeCode(), b.EntryName) }

func (b *BinkAtlasEntry) ReadFrom(stream io.Reader, _ bool, _ format.Version) error {
	size, err := byteio.ReadI32BE(stream)
	if err != nil {
		return err
	}
	b.Size = size

	version, err := byteio.ReadI32BE(stream)
	if err != nil {
		return err
	}
	if version < 1 {
		return fmt.Errorf("%w: bink atlas version %d", errs.ErrUnsupportedVersion, version)
	}
	b.Version = version

	name, err := byteio.ReadString(stream)
	if err != nil {
		return err
	}
	b.EntryName = name

	width, err := byteio.ReadI32BE(stream)
	if err != nil {
		return err
	}
	b.Width = width

	height, err := byteio.ReadI32BE(stream)
	if err != nil {
		return err
	}
	b.Height = height

	if b.Version > 1 {
		x, err := byteio.ReadI32BE(stream)
		if err != nil {
			return err
		}
		y, err := byteio.ReadI32BE(stream)
		if err != nil {
			return err
		}
		b.OriginalSize = Point{X: x, Y: y}

		if b.Version > 2 {
			scaling, err := byteio.ReadF32BE(stream)
			if err != nil {
				return err
			}
			b.Scaling = scaling
		}
	}

	return nil
}

func (b *BinkAtlasEntry) WriteTo(stream io.Writer) error {
	if err := byteio.WriteI32BE(stream, b.Size); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(stream, b.Version); err != nil {
		return err
	}
	if err := byteio.WriteString(stream, b.EntryName); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(stream, b.Width); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(stream, b.Height); err != nil {
		return err
	}

	if b.Version > 1 {
		if err := byteio.WriteI32BE(stream, b.OriginalSize.X); err != nil {
			return err
		}
		if err := byteio.WriteI32BE(stream, b.OriginalSize.Y); err != nil {
			return err
		}

		if b.Version > 2 {
			if err := byteio.WriteF32BE(stream, b.Scaling); err != nil {
				return err
			}
		}
	}

	return nil
}
