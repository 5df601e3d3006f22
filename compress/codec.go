// Package compress implements the chunk compression codecs used by deppth
// packages: a plain passthrough codec, LZ4 (Hades), and LZF (Transistor/Pyre).
// LZX is registered as a reserved code point that refuses to compress or
// decompress.
//
// Each codec is registered under both its symbolic name and its single-byte
// type code in a process-wide, immutable registry built at package init. The
// container layer looks codecs up by either key: by code when parsing a
// package header, by name when a caller opens a package for writing.
package compress

import (
	"fmt"
	"io"

	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// Codec reads, writes, and skips chunks of a package's compressed byte stream.
// Implementations are safe for concurrent use; they hold no mutable state of
// their own.
type Codec interface {
	// TypeCode returns the single byte recorded in a package header to identify
	// this codec.
	TypeCode() format.CompressionType
	// Name returns the codec's symbolic name (e.g. "lz4").
	Name() string
	// ReadChunk reads and, if necessary, decompresses the next chunk from raw,
	// returning exactly chunkSize bytes.
	ReadChunk(raw io.Reader, chunkSize int) ([]byte, error)
	// WriteChunk compresses (if applicable) and writes chunk to raw.
	WriteChunk(raw io.Writer, chunk []byte) error
	// SkipChunk advances raw past the next chunk without materializing it.
	SkipChunk(raw io.ReadSeeker, chunkSize int) error
}

var (
	byCode = map[format.CompressionType]func() Codec{}
	byName = map[string]func() Codec{}
)

func register(code format.CompressionType, name string, factory func() Codec) {
	byCode[code] = factory
	byName[name] = factory
}

func init() {
	register(format.CompressionUncompressed, "uncompressed", func() Codec { return UncompressedCodec{} })
	register(format.CompressionLZ4, "lz4", func() Codec { return NewLZ4Codec() })
	register(format.CompressionLZF, "lzf", func() Codec { return NewLZFCodec() })
	register(format.CompressionLZX, "lzx", func() Codec { return NewLZXCodec() })
}

// ByCode looks up a codec by its header type code. Returns ErrUnknownCompression
// if the code isn't registered.
func ByCode(code format.CompressionType) (Codec, error) {
	factory, ok := byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCompression, byte(code))
	}

	return factory(), nil
}

// ByName looks up a codec by its symbolic name. This is the path writers use so
// the resulting header records the canonical type code for the chosen codec.
// Returns ErrUnknownCompression if the name isn't registered.
func ByName(name string) (Codec, error) {
	factory, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, name)
	}

	return factory(), nil
}
