package entry

import (
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/format"
)

// IncludeEntry references another package that the engine should also load
// alongside this one.
type IncludeEntry struct {
	EntryName string
}

func (i *IncludeEntry) TypeCode() format.EntryType { return format.EntryInclude }
func (i *IncludeEntry) Name() string               { return i.EntryName }
func (i *IncludeEntry) DisplayName() string        { return displayName(i.TypeCode(), i.EntryName) }

func (i *IncludeEntry) ReadFrom(stream io.Reader, _ bool, _ format.Version) error {
	name, err := byteio.ReadString(stream)
	if err != nil {
		return err
	}
	i.EntryName = name

	return nil
}

func (i *IncludeEntry) WriteTo(stream io.Writer) error {
	return byteio.WriteString(stream, i.EntryName)
}
