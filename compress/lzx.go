package compress

import (
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// lzxBlock is a reserved code point. LZX is used by the games to compress
// XNB texture payloads, never package chunks, so no package has ever been
// observed requiring it here. Compression/decompression are unimplemented;
// skipping a chunk (which never needs to interpret the payload) still works.
type lzxBlock struct{}

func (lzxBlock) compress([]byte) ([]byte, error) {
	return nil, errs.ErrNotImplemented
}

func (lzxBlock) decompress([]byte, int) ([]byte, error) {
	return nil, errs.ErrNotImplemented
}

// NewLZXCodec creates the reserved LZX chunk codec (type code 0x60).
func NewLZXCodec() Codec {
	return framedCodec{code: format.CompressionLZX, name: "lzx", block: lzxBlock{}}
}
