package entry

import (
	"bytes"
	"fmt"
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// Point is a 2D integer coordinate, used for atlas hull points.
type Point struct {
	X, Y int32
}

// FPoint is a 2D floating-point coordinate, used for atlas scale ratios.
type FPoint struct {
	X, Y float32
}

// Rect is an integer rectangle.
type Rect struct {
	X, Y, Width, Height int32
}

// SubAtlas describes one packed sprite within an atlas's parent texture.
type SubAtlas struct {
	Name         string
	Rect         Rect
	TopLeft      Point
	OriginalSize Point
	ScaleRatio   FPoint
	IsMulti      bool
	IsMip        bool
	IsAlpha8     bool
	Hull         []Point
}

// AtlasEntry maps the sprites packed into a texture (or, for a reference
// atlas, a texture defined in a different package) to their positions and
// sizes within it. It is almost always found paired with a TextureEntry via
// the manifest, either embedding that texture directly or referencing one by
// name.
type AtlasEntry struct {
	EntryName              string
	Version                int32
	SubAtlases             []SubAtlas
	IsReference            bool
	ReferencedTextureName  string
	IncludedTexture        *TextureEntry
}

func (a *AtlasEntry) TypeCode() format.EntryType { return format.EntryAtlas }
func (a *AtlasEntry) Name() string               { return a.EntryName }
func (a *AtlasEntry) DisplayName() string         { return displayName(a.TypeCode(), a.EntryName) }

func (a *AtlasEntry) ReadFrom(stream io.Reader, isManifest bool, version format.Version) error {
	// The stored size is ignored on read; see WriteTo for why it can't be
	// trusted on write either.
	if _, err := io.CopyN(io.Discard, stream, 4); err != nil {
		return fmt.Errorf("%w: read atlas size: %v", errs.ErrMalformedInput, err)
	}

	a.Version = 0

	numSubAtlases, err := byteio.ReadI32BE(stream)
	if err != nil {
		return err
	}

	if numSubAtlases == format.AtlasVersionSentinel {
		v, err := byteio.ReadI32BE(stream)
		if err != nil {
			return err
		}
		a.Version = v

		n, err := byteio.ReadI32BE(stream)
		if err != nil {
			return err
		}
		numSubAtlases = n
	}

	a.SubAtlases = make([]SubAtlas, 0, numSubAtlases)
	for i := int32(0); i < numSubAtlases; i++ {
		sub, err := a.readSubAtlas(stream)
		if err != nil {
			return err
		}
		a.SubAtlases = append(a.SubAtlases, sub)
	}

	marker, err := byteio.ReadU8(stream)
	if err != nil {
		return err
	}

	if int(marker) == format.AtlasReferenceMarker || isManifest {
		a.IsReference = true

		name, err := byteio.ReadString(stream)
		if err != nil {
			return err
		}
		a.ReferencedTextureName = name
		a.EntryName = name

		return nil
	}

	a.IsReference = false
	tex := &TextureEntry{}
	if err := tex.ReadFrom(stream, false, version); err != nil {
		return fmt.Errorf("atlas included texture: %w", err)
	}
	a.IncludedTexture = tex
	a.EntryName = tex.Name()

	return nil
}

func (a *AtlasEntry) readSubAtlas(stream io.Reader) (SubAtlas, error) {
	var sub SubAtlas

	name, err := byteio.ReadString(stream)
	if err != nil {
		return sub, err
	}
	sub.Name = name

	ints := make([]int32, 8)
	for i := range ints {
		v, err := byteio.ReadI32BE(stream)
		if err != nil {
			return sub, err
		}
		ints[i] = v
	}
	sub.Rect = Rect{X: ints[0], Y: ints[1], Width: ints[2], Height: ints[3]}
	sub.TopLeft = Point{X: ints[4], Y: ints[5]}
	sub.OriginalSize = Point{X: ints[6], Y: ints[7]}

	sx, err := byteio.ReadF32BE(stream)
	if err != nil {
		return sub, err
	}
	sy, err := byteio.ReadF32BE(stream)
	if err != nil {
		return sub, err
	}
	sub.ScaleRatio = FPoint{X: sx, Y: sy}

	if a.Version > 0 {
		flags, err := byteio.ReadU8(stream)
		if err != nil {
			return sub, err
		}

		sub.IsMulti = flags&1 != 0

		if a.Version > 1 {
			sub.IsMip = flags&2 != 0

			if a.Version > 3 {
				sub.IsAlpha8 = flags&4 != 0
			}
		}
	}

	if a.Version > 2 {
		hullCount, err := byteio.ReadI32BE(stream)
		if err != nil {
			return sub, err
		}

		sub.Hull = make([]Point, 0, hullCount)
		for i := int32(0); i < hullCount; i++ {
			x, err := byteio.ReadI32BE(stream)
			if err != nil {
				return sub, err
			}
			y, err := byteio.ReadI32BE(stream)
			if err != nil {
				return sub, err
			}
			sub.Hull = append(sub.Hull, Point{X: x, Y: y})
		}
	}

	return sub, nil
}

// WriteTo re-encodes the atlas. The leading size field this writes is
// deliberately the content length minus 35, reproducing an off-by-35 quirk
// present in every known atlas-producing tool; nothing that reads packages
// back in (including this one) depends on it being correct, since ReadFrom
// skips the stored length and decodes the body field by field.
func (a *AtlasEntry) WriteTo(stream io.Writer) error {
	var body bytes.Buffer

	if err := byteio.WriteI32BE(&body, format.AtlasVersionSentinel); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(&body, a.Version); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(&body, int32(len(a.SubAtlases))); err != nil {
		return err
	}

	for _, sub := range a.SubAtlases {
		if err := a.writeSubAtlas(&body, sub); err != nil {
			return err
		}
	}

	marker := byte(0)
	if a.IsReference {
		marker = byte(format.AtlasReferenceMarker)
	}
	if err := byteio.WriteU8(&body, marker); err != nil {
		return err
	}

	if a.IsReference {
		if err := byteio.WriteString(&body, a.ReferencedTextureName); err != nil {
			return err
		}
	} else {
		if a.IncludedTexture == nil {
			return fmt.Errorf("%w: non-reference atlas has no included texture", errs.ErrEncodingError)
		}
		if err := a.IncludedTexture.WriteTo(&body); err != nil {
			return err
		}
	}

	if err := byteio.WriteI32BE(stream, int32(body.Len())-35); err != nil {
		return err
	}
	_, err := stream.Write(body.Bytes())

	return err
}

func (a *AtlasEntry) writeSubAtlas(body *bytes.Buffer, sub SubAtlas) error {
	if err := byteio.WriteString(body, sub.Name); err != nil {
		return err
	}

	ints := []int32{
		sub.Rect.X, sub.Rect.Y, sub.Rect.Width, sub.Rect.Height,
		sub.TopLeft.X, sub.TopLeft.Y,
		sub.OriginalSize.X, sub.OriginalSize.Y,
	}
	for _, v := range ints {
		if err := byteio.WriteI32BE(body, v); err != nil {
			return err
		}
	}

	if err := byteio.WriteF32BE(body, sub.ScaleRatio.X); err != nil {
		return err
	}
	if err := byteio.WriteF32BE(body, sub.ScaleRatio.Y); err != nil {
		return err
	}

	if a.Version > 0 {
		var flags byte
		if sub.IsMulti {
			flags |= 1
		}
		if sub.IsMip {
			flags |= 2
		}
		if sub.IsAlpha8 {
			flags |= 4
		}
		if err := byteio.WriteU8(body, flags); err != nil {
			return err
		}
	}

	if a.Version > 2 {
		if err := byteio.WriteI32BE(body, int32(len(sub.Hull))); err != nil {
			return err
		}
		for _, p := range sub.Hull {
			if err := byteio.WriteI32BE(body, p.X); err != nil {
				return err
			}
			if err := byteio.WriteI32BE(body, p.Y); err != nil {
				return err
			}
		}
	}

	return nil
}
