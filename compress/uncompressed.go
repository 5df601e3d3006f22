package compress

import (
	"fmt"
	"io"

	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// UncompressedCodec passes chunk bytes through unmodified. Unlike the
// compressed codecs it has no flag byte or length prefix: the chunk is stored
// verbatim at the container level.
type UncompressedCodec struct{}

var _ Codec = UncompressedCodec{}

func (UncompressedCodec) TypeCode() format.CompressionType { return format.CompressionUncompressed }
func (UncompressedCodec) Name() string                     { return "uncompressed" }

// ReadChunk reads up to chunkSize bytes, same as the original's best-effort
// stream.read(chunk_size): the writer only ever flushes the bytes actually
// used in a chunk plus its sentinel, never padding to the full window, so a
// short read here at end-of-file is expected, not an error.
func (UncompressedCodec) ReadChunk(raw io.Reader, chunkSize int) ([]byte, error) {
	buf := make([]byte, chunkSize)
	n, err := io.ReadFull(raw, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("%w: read uncompressed chunk: %v", errs.ErrMalformedInput, err)
	}

	return buf[:n], nil
}

func (UncompressedCodec) WriteChunk(raw io.Writer, chunk []byte) error {
	_, err := raw.Write(chunk)
	return err
}

func (UncompressedCodec) SkipChunk(raw io.ReadSeeker, chunkSize int) error {
	_, err := raw.Seek(int64(chunkSize), io.SeekCurrent)
	return err
}
