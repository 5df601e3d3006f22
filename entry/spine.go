package entry

import (
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/format"
)

// SpineEntry bundles a Spine skeletal-animation asset identifier together
// with its atlas and skeleton data. Unlike AtlasEntry, the atlas text here
// uses Spine's own libgdx-style atlas format, not this package's.
type SpineEntry struct {
	Version    byte
	EntryName  string
	SpineAtlas string
	SpineData  string
}

func (s *SpineEntry) TypeCode() format.EntryType { return format.EntrySpine }
func (s *SpineEntry) Name() string               { return s.EntryName }
func (s *SpineEntry) DisplayName() string         { return displayName(s.TypeCode(), s.EntryName) }

func (s *SpineEntry) ReadFrom(stream io.Reader, _ bool, _ format.Version) error {
	version, err := byteio.ReadU8(stream)
	if err != nil {
		return err
	}
	s.Version = version

	name, err := byteio.ReadString(stream)
	if err != nil {
		return err
	}
	s.EntryName = name

	atlas, err := byteio.ReadBigString(stream)
	if err != nil {
		return err
	}
	s.SpineAtlas = atlas

	data, err := byteio.ReadBigString(stream)
	if err != nil {
		return err
	}
	s.SpineData = data

	return nil
}

func (s *SpineEntry) WriteTo(stream io.Writer) error {
	if err := byteio.WriteU8(stream, s.Version); err != nil {
		return err
	}
	if err := byteio.WriteString(stream, s.EntryName); err != nil {
		return err
	}
	if err := byteio.WriteBigString(stream, s.SpineAtlas); err != nil {
		return err
	}

	return byteio.WriteBigString(stream, s.SpineData)
}
