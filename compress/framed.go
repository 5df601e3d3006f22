package compress

import (
	"fmt"
	"io"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// blockCodec compresses and decompresses a single block of bytes. It is the
// algorithm-specific half of a framedCodec; framing (the flag byte and length
// prefix) is shared across every compressed codec.
type blockCodec interface {
	compress(data []byte) ([]byte, error)
	decompress(data []byte, chunkSize int) ([]byte, error)
}

// framedCodec implements the compressed-chunk frame shared by every codec
// except uncompressed: a 1-byte flag (0 = raw passthrough, non-zero =
// compressed), and when compressed, a 4-byte big-endian length followed by
// that many bytes of codec payload which decompresses to exactly chunkSize
// bytes (right-padded with zero if the codec produced fewer).
type framedCodec struct {
	code  format.CompressionType
	name  string
	block blockCodec
}

func (f framedCodec) TypeCode() format.CompressionType { return f.code }
func (f framedCodec) Name() string                     { return f.name }

func (f framedCodec) ReadChunk(raw io.Reader, chunkSize int) ([]byte, error) {
	flag, err := byteio.ReadU8(raw)
	if err != nil {
		return nil, err
	}

	if flag == 0 {
		buf := make([]byte, chunkSize)
		if _, err := io.ReadFull(raw, buf); err != nil {
			return nil, fmt.Errorf("%w: read raw chunk: %v", errs.ErrMalformedInput, err)
		}

		return buf, nil
	}

	length, err := byteio.ReadI32BE(raw)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative compressed chunk length: %d", errs.ErrMalformedInput, length)
	}

	compressed := make([]byte, length)
	if _, err := io.ReadFull(raw, compressed); err != nil {
		return nil, fmt.Errorf("%w: read compressed chunk: %v", errs.ErrMalformedInput, err)
	}

	decompressed, err := f.block.decompress(compressed, chunkSize)
	if err != nil {
		return nil, err
	}

	if len(decompressed) < chunkSize {
		padded := make([]byte, chunkSize)
		copy(padded, decompressed)
		decompressed = padded
	}

	return decompressed[:chunkSize], nil
}

func (f framedCodec) WriteChunk(raw io.Writer, chunk []byte) error {
	compressed, err := f.block.compress(chunk)
	if err != nil {
		return err
	}

	if err := byteio.WriteU8(raw, 0x01); err != nil {
		return err
	}
	if err := byteio.WriteI32BE(raw, int32(len(compressed))); err != nil {
		return err
	}

	_, err = raw.Write(compressed)

	return err
}

func (f framedCodec) SkipChunk(raw io.ReadSeeker, chunkSize int) error {
	flag, err := byteio.ReadU8(raw)
	if err != nil {
		return err
	}

	if flag == 0 {
		_, err := raw.Seek(int64(chunkSize), io.SeekCurrent)
		return err
	}

	length, err := byteio.ReadI32BE(raw)
	if err != nil {
		return err
	}

	_, err = raw.Seek(int64(length), io.SeekCurrent)

	return err
}
