package entry

import (
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/format"
)

// xnbAsset holds the fields shared by texture and texture3d entries: a name
// and an embedded, fully-opaque XNB payload. Decoding the payload itself (for
// image export) is the imageio package's job, not this one's.
type xnbAsset struct {
	EntryName string
	Size      int32
	Data      []byte
}

func (x *xnbAsset) Name() string { return x.EntryName }

func (x *xnbAsset) readFrom(stream io.Reader) error {
	name, err := byteio.ReadString(stream)
	if err != nil {
		return err
	}
	x.EntryName = name

	size, err := byteio.ReadI32BE(stream)
	if err != nil {
		return err
	}
	x.Size = size

	data := make([]byte, size)
	if _, err := io.ReadFull(stream, data); err != nil {
		return err
	}
	x.Data = data

	return nil
}

func (x *xnbAsset) writeTo(stream io.Writer) error {
	if err := byteio.WriteString(stream, x.EntryName); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(stream, x.Size); err != nil {
		return err
	}
	_, err := stream.Write(x.Data)

	return err
}

// TextureEntry represents a compiled 2D spritesheet, almost always paired
// with an AtlasEntry in the package's manifest.
type TextureEntry struct {
	xnbAsset
}

func (t *TextureEntry) TypeCode() format.EntryType { return format.EntryTexture }
func (t *TextureEntry) DisplayName() string        { return displayName(t.TypeCode(), shortName(t.EntryName)) }

func (t *TextureEntry) ReadFrom(stream io.Reader, _ bool, _ format.Version) error {
	return t.readFrom(stream)
}

func (t *TextureEntry) WriteTo(stream io.Writer) error {
	return t.writeTo(stream)
}

// Texture3DEntry represents an encoded three-dimensional (voxel-stack) image.
// Unlike TextureEntry, there is no practical export target besides the raw
// XNB payload.
type Texture3DEntry struct {
	xnbAsset
}

func (t *Texture3DEntry) TypeCode() format.EntryType { return format.EntryTexture3D }
func (t *Texture3DEntry) DisplayName() string        { return displayName(t.TypeCode(), shortName(t.EntryName)) }

func (t *Texture3DEntry) ReadFrom(stream io.Reader, _ bool, _ format.Version) error {
	return t.readFrom(stream)
}

func (t *Texture3DEntry) WriteTo(stream io.Writer) error {
	return t.writeTo(stream)
}
