// Package errs defines the sentinel errors returned by the deppth package I/O stack.
//
// Callers should use errors.Is against these sentinels rather than comparing error
// strings; most call sites wrap a sentinel with fmt.Errorf("%w: ...", errs.X, ...)
// to attach context.
package errs

import "errors"

var (
	// ErrUnknownCompression is returned when a package header names a compression
	// type code that has no registered chunk processor.
	ErrUnknownCompression = errors.New("deppth: unknown compression type code")

	// ErrUnsupportedCompression is returned when a chunk processor is registered
	// but its optional native backend is unavailable.
	ErrUnsupportedCompression = errors.New("deppth: unsupported compression backend")

	// ErrUnsupportedVersion is returned when a package or atlas version falls
	// outside the set of versions this implementation understands.
	ErrUnsupportedVersion = errors.New("deppth: unsupported version")

	// ErrMalformedInput is returned when a read encounters truncated, out-of-range,
	// or otherwise corrupt data.
	ErrMalformedInput = errors.New("deppth: malformed input")

	// ErrEncodingError is returned when a write is asked to encode a value that
	// violates a format constraint (e.g. a string longer than its length prefix
	// can hold).
	ErrEncodingError = errors.New("deppth: encoding error")

	// ErrUnsupportedFormat is returned when an export or import path's extension
	// isn't recognized by the target entry type.
	ErrUnsupportedFormat = errors.New("deppth: unsupported format")

	// ErrNotImplemented is returned by operations that are deliberately
	// unimplemented, such as LZX compression.
	ErrNotImplemented = errors.New("deppth: not implemented")

	// ErrNotSeekable is returned when Seek is called on a writer, or when an
	// unsupported whence is requested.
	ErrNotSeekable = errors.New("deppth: stream is not seekable")

	// ErrChunkTooLarge is returned when a single write exceeds the chunk window size.
	ErrChunkTooLarge = errors.New("deppth: write exceeds chunk size")

	// ErrUnknownEntryType is returned when the entry dispatch loop encounters a
	// leading type byte with no registered codec.
	ErrUnknownEntryType = errors.New("deppth: unknown entry type byte")
)
