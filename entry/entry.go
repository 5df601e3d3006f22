// Package entry implements the typed entry codec: reading and writing the
// individual asset records that make up a package's entry stream, dispatched
// by a single leading type byte.
package entry

import (
	"fmt"
	"io"
	"strings"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// Entry is a single package asset record.
type Entry interface {
	// TypeCode returns the leading byte that identifies this entry's kind in
	// the package stream.
	TypeCode() format.EntryType
	// Name returns the entry's logical name, as used for manifest pairing and
	// extraction paths.
	Name() string
	// DisplayName returns a human-readable label, e.g. for CLI listings.
	DisplayName() string
	// ReadFrom initializes the entry from stream, which is positioned
	// immediately after the type byte.
	ReadFrom(stream io.Reader, isManifest bool, version format.Version) error
	// WriteTo writes the entry's body to stream; the caller has already
	// written the type byte.
	WriteTo(stream io.Writer) error
}

type factory func() Entry

var registry = map[format.EntryType]factory{}

func register(code format.EntryType, f factory) {
	registry[code] = f
}

func init() {
	register(format.EntryTexture, func() Entry { return &TextureEntry{} })
	register(format.EntryTexture3D, func() Entry { return &Texture3DEntry{} })
	register(format.EntryBink, func() Entry { return &BinkEntry{} })
	register(format.EntryAtlas, func() Entry { return &AtlasEntry{} })
	register(format.EntryBinkAtlas, func() Entry { return &BinkAtlasEntry{} })
	register(format.EntryInclude, func() Entry { return &IncludeEntry{} })
	register(format.EntrySpine, func() Entry { return &SpineEntry{} })
}

// Decode reads one entry from stream given its already-consumed type byte.
func Decode(typeByte byte, stream io.Reader, isManifest bool, version format.Version) (Entry, error) {
	f, ok := registry[format.EntryType(typeByte)]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownEntryType, typeByte)
	}

	e := f()
	if err := e.ReadFrom(stream, isManifest, version); err != nil {
		return nil, fmt.Errorf("%s entry: %w", e.TypeCode(), err)
	}

	return e, nil
}

// Encode writes e's type byte followed by its body.
func Encode(stream io.Writer, e Entry) error {
	if err := byteio.WriteU8(stream, byte(e.TypeCode())); err != nil {
		return err
	}

	return e.WriteTo(stream)
}

// shortName returns the last path component of a backslash-separated name, as
// used throughout the original toolchain for display and extraction paths.
func shortName(name string) string {
	parts := strings.Split(name, `\`)
	return parts[len(parts)-1]
}

// ShortName exposes shortName for callers outside this package (the façade's
// extraction-path and glob-matching logic).
func ShortName(name string) string { return shortName(name) }

func displayName(typeCode format.EntryType, name string) string {
	return fmt.Sprintf("%s: %s", typeCode, name)
}
