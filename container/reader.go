// Package container implements the chunked, virtually-addressed byte stream
// that underlies every deppth package: a 4-byte header followed by a sequence
// of compressed chunks, exposed to the entry codec as a single logical stream
// of decompressed bytes with seek/tell support.
package container

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/quaerus/deppth/byteio"
	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// windowSize returns the uncompressed payload size for chunk index k: the
// first chunk's window is shrunk by 4 bytes because the package header
// occupies the start of its virtual range.
func windowSize(chunkIndex int) int {
	if chunkIndex == 0 {
		return format.ChunkSize - 4
	}

	return format.ChunkSize
}

// Reader exposes a package's compressed chunk stream as a single decompressed
// byte stream with random-access seeking. It lazily materializes chunks on
// demand and remembers every raw offset it has visited so re-seeking into
// already-visited territory never re-reads the file from the start.
type Reader struct {
	raw     *os.File
	codec   compress.Codec
	version format.Version

	// chunkLocations[k] is the raw byte offset in the underlying file where
	// chunk k's on-disk frame begins. It grows monotonically as new chunks are
	// visited and is never invalidated.
	chunkLocations []int64

	virtualChunk  int
	virtualOffset int // position within the current chunk's virtual range

	buf    []byte // materialized (decompressed) bytes of the current chunk, nil if unmaterialized
	bufPos int    // index into buf; for chunk 0, bufPos = virtualOffset-4
}

// Open opens name read-only, parses its 4-byte header, and returns a Reader
// positioned immediately after the header (Tell() == 4).
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		raw:            f,
		chunkLocations: []int64{4},
	}

	if err := r.readHeader(); err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

func (r *Reader) readHeader() error {
	pos, err := r.raw.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if pos != 0 {
		return fmt.Errorf("%w: attempted to read header while not at start of file", errs.ErrMalformedInput)
	}

	codeByte, err := byteio.ReadU8(r.raw)
	if err != nil {
		return err
	}

	codec, err := compress.ByCode(format.CompressionType(codeByte))
	if err != nil {
		return err
	}
	r.codec = codec

	if _, err := io.CopyN(io.Discard, r.raw, 2); err != nil {
		return fmt.Errorf("%w: read header filler: %v", errs.ErrMalformedInput, err)
	}

	versionByte, err := byteio.ReadU8(r.raw)
	if err != nil {
		return err
	}

	r.version = format.Version(versionByte)
	if !r.version.Valid() {
		return fmt.Errorf("%w: package version %d", errs.ErrUnsupportedVersion, versionByte)
	}

	r.virtualChunk = 0
	r.virtualOffset = 4

	return nil
}

// Compressor returns the codec recorded in the package header.
func (r *Reader) Compressor() compress.Codec { return r.codec }

// Version returns the package version recorded in the header.
func (r *Reader) Version() format.Version { return r.version }

// Close releases the underlying file handle.
func (r *Reader) Close() error { return r.raw.Close() }

// Tell returns the current virtual (decompressed-view) stream position.
func (r *Reader) Tell() int64 {
	return int64(r.virtualChunk)*format.ChunkSize + int64(r.virtualOffset)
}

// IsEOF reports whether the reader has no more data: the underlying file is
// exhausted and the current chunk buffer has been fully consumed.
func (r *Reader) IsEOF() (bool, error) {
	rawEOF, err := byteio.IsEOF(r.raw)
	if err != nil {
		return false, err
	}

	return rawEOF && r.bufPos >= len(r.buf), nil
}

func (r *Reader) ensureBuffer() error {
	if r.buf != nil {
		return nil
	}

	return r.materializeCurrent()
}

func (r *Reader) materializeCurrent() error {
	size := windowSize(r.virtualChunk)

	buf, err := r.codec.ReadChunk(r.raw, size)
	if err != nil {
		return err
	}

	r.buf = buf
	if r.virtualChunk == 0 {
		r.bufPos = r.virtualOffset - 4
	} else {
		r.bufPos = r.virtualOffset
	}

	r.recordChunkLocation(r.virtualChunk + 1)

	return nil
}

// recordChunkLocation records the raw offset where chunk idx begins, if it
// hasn't already been recorded. Reading/skipping a chunk always consumes its
// entire on-disk frame, so the raw position immediately afterward is exactly
// the next chunk's start.
func (r *Reader) recordChunkLocation(idx int) {
	if idx >= len(r.chunkLocations) {
		pos, err := r.raw.Seek(0, io.SeekCurrent)
		if err == nil {
			r.chunkLocations = append(r.chunkLocations, pos)
		}
	}
}

// Read reads exactly n bytes of decompressed data, loading successor chunks as
// needed. It returns io.EOF if the stream is exhausted before n bytes could
// be gathered.
func (r *Reader) Read(p []byte) (int, error) {
	n := len(p)
	if n == 0 {
		return 0, nil
	}

	if err := r.ensureBuffer(); err != nil {
		return 0, err
	}

	total := 0
	for total < n {
		available := len(r.buf) - r.bufPos
		if available <= 0 {
			if err := r.advanceToNextChunk(); err != nil {
				return total, err
			}

			continue
		}

		want := n - total
		if want > available {
			want = available
		}

		copy(p[total:total+want], r.buf[r.bufPos:r.bufPos+want])
		r.bufPos += want
		r.virtualOffset += want
		total += want
	}

	return total, nil
}

// advanceToNextChunk moves the reader to the start of the next chunk and
// materializes it. It is used both by Read (when a request spans a chunk
// boundary) and by the entry dispatch loop (on the 0xBE sentinel).
func (r *Reader) advanceToNextChunk() error {
	eof, err := byteio.IsEOF(r.raw)
	if err != nil {
		return err
	}
	if eof {
		return io.EOF
	}

	r.virtualChunk++
	r.virtualOffset = 0
	r.buf = nil

	return r.materializeCurrent()
}

// AdvanceChunkBoundary handles the end-of-chunk sentinel (0xBE): it abandons
// the remainder of the current chunk's buffer and materializes the next one.
func (r *Reader) AdvanceChunkBoundary() error {
	r.buf = nil
	r.bufPos = 0

	return r.advanceToNextChunk()
}

// NextEntryByte reads the next entry dispatch byte, transparently advancing
// past any number of end-of-chunk sentinels. It returns io.EOF when the
// end-of-file sentinel is reached.
func (r *Reader) NextEntryByte() (byte, error) {
	for {
		eof, err := r.IsEOF()
		if err != nil {
			return 0, err
		}
		if eof {
			return 0, io.EOF
		}

		var b [1]byte
		if _, err := r.Read(b[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}

			return 0, err
		}

		switch format.EntryType(b[0]) {
		case format.SentinelEndOfChunk:
			if err := r.AdvanceChunkBoundary(); err != nil {
				if errors.Is(err, io.EOF) {
					return 0, io.EOF
				}

				return 0, err
			}

			continue
		case format.SentinelEndOfFile:
			return 0, io.EOF
		default:
			return b[0], nil
		}
	}
}

// Seek moves to absolute virtual position pos. Only forward/backward absolute
// seeks are supported; there is no concept of SEEK_CUR/SEEK_END since the
// total decompressed size isn't known up front.
func (r *Reader) Seek(pos int64) (int64, error) {
	targetChunk := int(pos / format.ChunkSize)
	targetOffset := int(pos % format.ChunkSize)

	oldChunk := r.virtualChunk

	if targetChunk != r.virtualChunk {
		if err := r.seekChunk(targetChunk); err != nil {
			return 0, err
		}
	}

	r.virtualOffset = targetOffset

	if err := r.afterSeek(oldChunk, targetChunk, targetOffset); err != nil {
		return 0, err
	}

	return r.Tell(), nil
}

// seekChunk positions the raw stream at the start of chunk n, walking forward
// chunk-by-chunk via SkipChunk when n hasn't been visited yet.
func (r *Reader) seekChunk(n int) error {
	if n < len(r.chunkLocations) {
		if _, err := r.raw.Seek(r.chunkLocations[n], io.SeekStart); err != nil {
			return err
		}

		r.virtualChunk = n

		return nil
	}

	if _, err := r.raw.Seek(r.chunkLocations[len(r.chunkLocations)-1], io.SeekStart); err != nil {
		return err
	}
	r.virtualChunk = len(r.chunkLocations) - 1

	for r.virtualChunk < n {
		if err := r.skipChunk(); err != nil {
			return err
		}
	}

	return nil
}

// skipChunk advances the raw stream past the current chunk without
// decompressing it, recording the next chunk's raw offset.
func (r *Reader) skipChunk() error {
	size := windowSize(r.virtualChunk)

	if err := r.codec.SkipChunk(r.raw, size); err != nil {
		return err
	}

	r.virtualChunk++
	r.recordChunkLocation(r.virtualChunk)

	return nil
}

func (r *Reader) afterSeek(oldChunk, newChunk, newOffset int) error {
	if oldChunk == newChunk {
		// Buffer still valid; just reposition within it.
		if newChunk == 0 {
			r.bufPos = newOffset - 4
		} else {
			r.bufPos = newOffset
		}

		return nil
	}

	// Buffer is stale.
	r.buf = nil
	r.bufPos = 0

	chunkPos := newOffset
	if newChunk == 0 {
		if chunkPos <= 4 {
			// Seeking into the header region: nothing to materialize.
			return nil
		}

		chunkPos -= 4
	}

	if chunkPos > 0 {
		if err := r.materializeCurrent(); err != nil {
			return err
		}

		r.bufPos = chunkPos
	}

	return nil
}
