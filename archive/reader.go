// Package archive ties the chunked container stream and the typed entry
// codec together into the package-level operations callers actually want:
// reading/writing whole packages, pairing a package with its manifest
// sidecar, and patching a package in place.
package archive

import (
	"io"

	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/format"
)

// Reader reads successive entries from a single package file.
type Reader struct {
	c          *container.Reader
	isManifest bool
}

// OpenReader opens path as a package for reading, positioned to read its
// first entry.
func OpenReader(path string, isManifest bool) (*Reader, error) {
	c, err := container.Open(path)
	if err != nil {
		return nil, err
	}

	return &Reader{c: c, isManifest: isManifest}, nil
}

// Compressor returns the codec recorded in the package header.
func (r *Reader) Compressor() format.CompressionType { return r.c.Compressor().TypeCode() }

// CompressorName returns the symbolic name of the codec recorded in the
// package header (e.g. "lz4"), suitable for passing to CreateWriter.
func (r *Reader) CompressorName() string { return r.c.Compressor().Name() }

// Version returns the package version recorded in the header.
func (r *Reader) Version() format.Version { return r.c.Version() }

// Close releases the underlying file handle.
func (r *Reader) Close() error { return r.c.Close() }

// ReadEntry reads the next entry, returning io.EOF once the end-of-file
// sentinel is reached.
func (r *Reader) ReadEntry() (entry.Entry, error) {
	typeByte, err := r.c.NextEntryByte()
	if err != nil {
		return nil, err
	}

	return entry.Decode(typeByte, r.c, r.isManifest, r.c.Version())
}

// Load reads every entry in the package, returning the last entry seen under
// each distinct name (packages occasionally repeat a name; the later entry
// wins, matching how the game engine itself resolves duplicates).
func (r *Reader) Load() (map[string]entry.Entry, error) {
	entries := make(map[string]entry.Entry)

	for {
		e, err := r.ReadEntry()
		if err != nil {
			if err == io.EOF {
				return entries, nil
			}

			return nil, err
		}

		entries[e.Name()] = e
	}
}

// LoadPackage opens path, reads every entry, and closes it.
func LoadPackage(path string, isManifest bool) (map[string]entry.Entry, error) {
	r, err := OpenReader(path, isManifest)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Load()
}
