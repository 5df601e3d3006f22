package container

import (
	"fmt"
	"io"
	"os"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// CreateMode selects how Create opens the underlying file, mirroring the two
// write modes a package writer supports.
type CreateMode int

const (
	// ModeExclusive fails if the file already exists.
	ModeExclusive CreateMode = iota
	// ModeTruncate overwrites an existing file.
	ModeTruncate
)

// Writer buffers decompressed bytes into fixed-size chunk windows and flushes
// each one through a compression codec as it fills, maintaining the same
// virtual addressing scheme as Reader.
type Writer struct {
	raw     *os.File
	codec   compress.Codec
	version format.Version

	virtualChunk int
	buf          []byte
	bufPos       int
}

// Create opens name for writing per mode, writes the 4-byte package header,
// and returns a Writer ready to accept entry bytes starting at virtual
// position 4.
func Create(name string, mode CreateMode, codec compress.Codec, version format.Version) (*Writer, error) {
	flags := os.O_WRONLY | os.O_CREATE
	switch mode {
	case ModeExclusive:
		flags |= os.O_EXCL
	case ModeTruncate:
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		raw:     f,
		codec:   codec,
		version: version,
	}

	if err := w.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}

	w.resetBuffer()

	return w, nil
}

func (w *Writer) writeHeader() error {
	if err := byteio.WriteU8(w.raw, byte(w.codec.TypeCode())); err != nil {
		return err
	}
	if _, err := w.raw.Write([]byte{0, 0}); err != nil {
		return err
	}

	return byteio.WriteU8(w.raw, byte(w.version))
}

func (w *Writer) resetBuffer() {
	w.buf = make([]byte, windowSize(w.virtualChunk))
	w.bufPos = 0
}

// Compressor returns the codec this writer encodes chunks with.
func (w *Writer) Compressor() compress.Codec { return w.codec }

// Version returns the package version this writer records in its header.
func (w *Writer) Version() format.Version { return w.version }

// Tell returns the current virtual write position.
func (w *Writer) Tell() int64 {
	offset := w.bufPos
	if w.virtualChunk == 0 {
		offset += 4
	}

	return int64(w.virtualChunk)*format.ChunkSize + int64(offset)
}

// Write appends p to the current chunk buffer, flushing and rolling over to a
// new chunk first if p wouldn't otherwise fit alongside the reserved
// end-of-chunk sentinel byte.
func (w *Writer) Write(p []byte) error {
	if len(p) > format.ChunkSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrChunkTooLarge, len(p))
	}

	for {
		available := len(w.buf) - w.bufPos - 1 // reserve the sentinel byte
		if len(p) <= available {
			copy(w.buf[w.bufPos:], p)
			w.bufPos += len(p)

			return nil
		}

		if err := w.flushChunk(format.SentinelEndOfChunk); err != nil {
			return err
		}
	}
}

// EndOfChunk explicitly flushes the current chunk, even if it isn't full, so
// the next entry begins a fresh chunk. Callers that pack entries tightly use
// this only when an entry wouldn't otherwise fit (Write already does this
// automatically); it is exposed for writers that want to force alignment.
func (w *Writer) EndOfChunk() error {
	return w.flushChunk(format.SentinelEndOfChunk)
}

func (w *Writer) flushChunk(sentinel format.EntryType) error {
	w.buf[w.bufPos] = byte(sentinel)

	var payload []byte
	if w.codec.TypeCode() == format.CompressionUncompressed {
		payload = w.buf[:w.bufPos+1]
	} else {
		payload = w.buf
	}

	if err := w.codec.WriteChunk(w.raw, payload); err != nil {
		return err
	}

	w.virtualChunk++
	w.resetBuffer()

	return nil
}

// Close writes the end-of-file sentinel, flushes the final chunk, and closes
// the underlying file.
func (w *Writer) Close() error {
	if err := w.flushChunk(format.SentinelEndOfFile); err != nil {
		w.raw.Close()
		return err
	}

	return w.raw.Close()
}

var _ io.Closer = (*Writer)(nil)
