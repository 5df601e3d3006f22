package compress

import (
	"fmt"

	"github.com/zhuyie/golzf"

	"github.com/quaerus/deppth/format"
)

// lzfBlock implements blockCodec using the LZF algorithm, matching the
// on-disk format Transistor and Pyre packages use.
type lzfBlock struct{}

func (lzfBlock) compress(data []byte) ([]byte, error) {
	// LZF never expands data by more than a handful of bytes per block; size
	// the destination generously and let the library report the real size.
	dst := make([]byte, len(data)+len(data)/16+64)

	n, err := golzf.Compress(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lzf compress: %w", err)
	}

	return dst[:n], nil
}

func (lzfBlock) decompress(data []byte, chunkSize int) ([]byte, error) {
	dst := make([]byte, chunkSize)

	n, err := golzf.Decompress(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lzf decompress: %w", err)
	}

	return dst[:n], nil
}

// NewLZFCodec creates the LZF chunk codec (type code 0x40), used by
// Transistor and Pyre packages.
func NewLZFCodec() Codec {
	return framedCodec{code: format.CompressionLZF, name: "lzf", block: lzfBlock{}}
}
