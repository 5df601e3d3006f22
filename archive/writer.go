package archive

import (
	"bytes"

	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/format"
)

// Writer writes successive entries to a single package file.
type Writer struct {
	c *container.Writer
}

// CreateWriter creates path as a new package with the named compressor and
// version, and writes its header.
func CreateWriter(path string, mode container.CreateMode, codecName string, version format.Version) (*Writer, error) {
	codec, err := compress.ByName(codecName)
	if err != nil {
		return nil, err
	}

	return CreateWriterWithCodec(path, mode, codec, version)
}

// CreateWriterWithCodec is CreateWriter for callers that already built a
// configured Codec (e.g. compress.NewLZ4Codec with compress.WithLevel),
// bypassing the by-name registry lookup.
func CreateWriterWithCodec(path string, mode container.CreateMode, codec compress.Codec, version format.Version) (*Writer, error) {
	c, err := container.Create(path, mode, codec, version)
	if err != nil {
		return nil, err
	}

	return &Writer{c: c}, nil
}

// Close flushes the final chunk (with the end-of-file sentinel) and closes
// the underlying file.
func (w *Writer) Close() error { return w.c.Close() }

// WriteEntry encodes e to a scratch buffer, then writes it as a single
// container.Write call so the writer's chunk-boundary logic sees the whole
// entry atomically and never splits it across chunks.
func (w *Writer) WriteEntry(e entry.Entry) error {
	var buf bytes.Buffer
	if err := entry.Encode(&buf, e); err != nil {
		return err
	}

	return w.c.Write(buf.Bytes())
}
