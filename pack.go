package deppth

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/quaerus/deppth/archive"
	"github.com/quaerus/deppth/atlasjson"
	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/format"
)

// Pack rebuilds a package from the directory layout Extract produces: every
// manifest/*.atlas.json descriptor whose sheet PNG exists at
// textures/atlases/<name>.png is written as a paired atlas (manifest) and
// texture (primary) entry, using LZ4 compression (the Hades-era codec), and
// filtered by entries (empty means everything).
func Pack(sourceDir, packagePath string, entries []string, log func(string)) error {
	log = logOrNoop(log)

	globs, err := compileMatchers(entries)
	if err != nil {
		return err
	}

	descriptors, err := filepath.Glob(filepath.Join(sourceDir, "manifest", "*.atlas.json"))
	if err != nil {
		return err
	}

	// Pin the HC level explicitly rather than going through the "lz4" registry
	// default, so repacked Hades packages stay byte-compatible even if the
	// registry's default level is ever retuned for other codec consumers.
	codec := compress.NewLZ4Codec(compress.WithLevel(lz4.Level9))

	w, err := archive.CreateManifestWriterWithCodec(packagePath, container.ModeTruncate, codec, format.VersionHades)
	if err != nil {
		return err
	}

	for _, descriptorPath := range descriptors {
		short := strings.TrimSuffix(filepath.Base(descriptorPath), ".atlas.json")

		if !matches(globs, short) {
			continue
		}

		sheetPath := filepath.Join(sourceDir, "textures", "atlases", short+".png")
		if _, err := os.Stat(sheetPath); err != nil {
			continue
		}

		if err := packOne(w, short, descriptorPath, sheetPath, log); err != nil {
			w.Close()
			return fmt.Errorf("packing %s: %w", short, err)
		}
	}

	return w.Close()
}

func packOne(w *archive.ManifestWriter, short, descriptorPath, sheetPath string, log func(string)) error {
	descriptor, err := os.ReadFile(descriptorPath)
	if err != nil {
		return err
	}

	atlas := &entry.AtlasEntry{}
	if err := atlasjson.Unmarshal(descriptor, atlas); err != nil {
		return err
	}

	img, err := loadPNG(sheetPath)
	if err != nil {
		return err
	}

	data, err := encodeXNBBGRA(img)
	if err != nil {
		return err
	}

	referencedName := atlas.ReferencedTextureName
	if referencedName == "" {
		referencedName = short
	}
	atlas.IsReference = true
	atlas.ReferencedTextureName = referencedName
	atlas.EntryName = referencedName

	tex := &entry.TextureEntry{}
	tex.EntryName = referencedName
	tex.Size = int32(len(data))
	tex.Data = data

	log(fmt.Sprintf("Packing %s", short))

	return w.WriteEntry(archive.PairedEntry{Primary: tex, Manifest: atlas})
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return png.Decode(f)
}

// encodeXNBBGRA wraps a decoded image back into a minimal, uncompressed XNB
// container carrying raw BGRA pixel data (imgFormat 0), the only format this
// engine can re-encode; generating DXT5/BC7-compressed XNB payloads from raw
// images is explicitly out of scope (see spec.md Non-goals).
func encodeXNBBGRA(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*width + x) * 4
			pixels[i+0] = byte(b >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(r >> 8)
			pixels[i+3] = byte(a >> 8)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("XNBw")
	buf.WriteByte(5)
	buf.WriteByte(0)

	lengthPos := buf.Len()
	writeLE32(&buf, 0) // total length, patched below

	// version-5 reader type table: zero readers, then the two trailing
	// 7-bit-encoded integers (each a single zero byte since 0 needs no
	// continuation bit).
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.WriteByte(0)

	writeLE32(&buf, 0) // imgFormat: BGRA
	writeLE32(&buf, int32(width))
	writeLE32(&buf, int32(height))
	writeLE32(&buf, 1) // mip level
	writeLE32(&buf, int32(len(pixels)))
	buf.Write(pixels)

	out := buf.Bytes()
	total := uint32(len(out))
	out[lengthPos] = byte(total)
	out[lengthPos+1] = byte(total >> 8)
	out[lengthPos+2] = byte(total >> 16)
	out[lengthPos+3] = byte(total >> 24)

	return out, nil
}

func writeLE32(buf *bytes.Buffer, v int32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}
