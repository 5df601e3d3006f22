package compress

import (
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/quaerus/deppth/format"
	"github.com/quaerus/deppth/internal/options"
)

// lz4CompressorPool pools lz4.CompressorHC instances; the type carries internal
// state that benefits from reuse across chunk writes. Hades packages are built
// with lz4.block.compress(mode='high_compression'), so compression (but not
// decompression, which is mode-agnostic) must go through the HC path.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

// lz4Options configures the codec NewLZ4Codec builds.
type lz4Options struct {
	level lz4.CompressionLevel
}

// WithLevel overrides the high-compression level NewLZ4Codec uses when
// compressing (default lz4.Level9, matching Hades packages). Decompression is
// unaffected: LZ4 block decoding doesn't depend on which level produced it.
func WithLevel(level lz4.CompressionLevel) options.Option[*lz4Options] {
	return options.NoError(func(o *lz4Options) { o.level = level })
}

// lz4Block implements blockCodec using high-compression-mode LZ4 blocks with no
// stored size prefix, matching the on-disk format Hades packages use.
type lz4Block struct {
	level lz4.CompressionLevel
}

func (b lz4Block) compress(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.CompressorHC)
	defer lz4CompressorPool.Put(c)

	c.Level = b.level

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

func (lz4Block) decompress(data []byte, chunkSize int) ([]byte, error) {
	dst := make([]byte, chunkSize)

	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// NewLZ4Codec creates the LZ4 chunk codec (type code 0x20), used by Hades
// packages. By default it compresses at lz4.Level9 (the HC level the Hades
// encoder uses); pass WithLevel to override it.
func NewLZ4Codec(opts ...options.Option[*lz4Options]) Codec {
	cfg := &lz4Options{level: lz4.Level9}
	_ = options.Apply(cfg, opts...)

	return framedCodec{code: format.CompressionLZ4, name: "lz4", block: lz4Block{level: cfg.level}}
}
