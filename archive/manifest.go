package archive

import (
	"io"
	"os"

	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/format"
)

// ManifestPath returns the sidecar manifest path for a package path.
func ManifestPath(path string) string { return path + "_manifest" }

// PairedEntry bundles a primary-package entry together with the manifest
// entry that describes it, if any (e.g. a TextureEntry paired with the
// AtlasEntry that maps its sprites).
type PairedEntry struct {
	Primary  entry.Entry
	Manifest entry.Entry
}

// ManifestReader reads a package alongside its manifest sidecar (if present),
// attaching each primary entry's manifest counterpart by name.
type ManifestReader struct {
	primary  *Reader
	manifest map[string]entry.Entry
	consumed map[string]bool
}

// OpenManifestReader opens path for reading, and if path+"_manifest" exists,
// fully loads it up front so entries can be paired as they're read.
func OpenManifestReader(path string) (*ManifestReader, error) {
	primary, err := OpenReader(path, false)
	if err != nil {
		return nil, err
	}

	manifestPath := ManifestPath(path)

	var manifest map[string]entry.Entry
	if _, err := os.Stat(manifestPath); err == nil {
		manifest, err = LoadPackage(manifestPath, true)
		if err != nil {
			primary.Close()
			return nil, err
		}
	}

	return &ManifestReader{primary: primary, manifest: manifest, consumed: make(map[string]bool)}, nil
}

// HasManifest reports whether a manifest sidecar was found alongside the
// primary package.
func (r *ManifestReader) HasManifest() bool { return r.manifest != nil }

// ManifestOnly returns the manifest entries that were never paired with a
// primary entry (most commonly bink atlases and include references, which
// only ever live in the manifest). Call it after exhausting ReadEntry.
func (r *ManifestReader) ManifestOnly() []entry.Entry {
	var only []entry.Entry

	for name, e := range r.manifest {
		if !r.consumed[name] {
			only = append(only, e)
		}
	}

	return only
}

// Compressor returns the primary package's codec.
func (r *ManifestReader) Compressor() format.CompressionType { return r.primary.Compressor() }

// CompressorName returns the primary package's codec's symbolic name.
func (r *ManifestReader) CompressorName() string { return r.primary.CompressorName() }

// Version returns the primary package's version.
func (r *ManifestReader) Version() format.Version { return r.primary.Version() }

// Close closes the primary package reader.
func (r *ManifestReader) Close() error { return r.primary.Close() }

// ReadEntry reads the next primary entry, attaching its manifest counterpart
// by name if one was loaded.
func (r *ManifestReader) ReadEntry() (PairedEntry, error) {
	e, err := r.primary.ReadEntry()
	if err != nil {
		return PairedEntry{}, err
	}

	paired := PairedEntry{Primary: e}
	if r.manifest != nil {
		if m, ok := r.manifest[e.Name()]; ok {
			paired.Manifest = m
			r.consumed[e.Name()] = true
		}
	}

	return paired, nil
}

// LoadAll reads every paired entry in the package.
func (r *ManifestReader) LoadAll() ([]PairedEntry, error) {
	var all []PairedEntry

	for {
		p, err := r.ReadEntry()
		if err != nil {
			if err == io.EOF {
				return all, nil
			}

			return nil, err
		}

		all = append(all, p)
	}
}

// ManifestWriter writes a package alongside its manifest sidecar, keeping
// both in lockstep so every primary entry's manifest counterpart (if any)
// lands in the sidecar immediately after it.
type ManifestWriter struct {
	primary  *Writer
	manifest *Writer
}

// CreateManifestWriter creates path and path+"_manifest" for writing.
func CreateManifestWriter(path string, mode container.CreateMode, codecName string, version format.Version) (*ManifestWriter, error) {
	codec, err := compress.ByName(codecName)
	if err != nil {
		return nil, err
	}

	return CreateManifestWriterWithCodec(path, mode, codec, version)
}

// CreateManifestWriterWithCodec is CreateManifestWriter for callers that
// already built a configured Codec (e.g. compress.NewLZ4Codec with
// compress.WithLevel). Both the primary package and its manifest sidecar are
// written with the same codec.
func CreateManifestWriterWithCodec(path string, mode container.CreateMode, codec compress.Codec, version format.Version) (*ManifestWriter, error) {
	primary, err := CreateWriterWithCodec(path, mode, codec, version)
	if err != nil {
		return nil, err
	}

	manifest, err := CreateWriterWithCodec(ManifestPath(path), mode, codec, version)
	if err != nil {
		primary.Close()
		return nil, err
	}

	return &ManifestWriter{primary: primary, manifest: manifest}, nil
}

// WriteEntry writes p's primary entry, then its manifest entry if present.
func (w *ManifestWriter) WriteEntry(p PairedEntry) error {
	if err := w.primary.WriteEntry(p.Primary); err != nil {
		return err
	}

	if p.Manifest != nil {
		if err := w.manifest.WriteEntry(p.Manifest); err != nil {
			return err
		}
	}

	return nil
}

// Close closes both the primary and manifest writers.
func (w *ManifestWriter) Close() error {
	if err := w.primary.Close(); err != nil {
		w.manifest.Close()
		return err
	}

	return w.manifest.Close()
}
