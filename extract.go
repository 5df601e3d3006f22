package deppth

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/quaerus/deppth/archive"
	"github.com/quaerus/deppth/atlasjson"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/imageio"
)

// Extract streams packagePath's entries (and, if present, its manifest
// sidecar's own standalone entries) into targetDir, filtered by entries (a
// glob pattern list; empty means everything). subtextures, when true and a
// manifest is present, crops each sub-atlas rectangle out of its parent
// texture into its own PNG instead of exporting the full sheet.
func Extract(packagePath, targetDir string, entries []string, subtextures bool, log func(string)) error {
	log = logOrNoop(log)

	globs, err := compileMatchers(entries)
	if err != nil {
		return err
	}

	opened, err := archive.OpenPackage(packagePath, archive.ModeReadManifest, "", 0)
	if err != nil {
		return err
	}
	r := opened.(*archive.ManifestReader)
	defer r.Close()

	if !r.HasManifest() && subtextures {
		log("Exporting subtextures requires a manifest. --subtextures flag ignored")
		subtextures = false
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	var includes []string

	for {
		p, err := r.ReadEntry()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		if !matches(globs, p.Primary.Name()) {
			continue
		}

		if err := extractOne(targetDir, p.Primary, p.Manifest, subtextures, &includes); err != nil {
			return fmt.Errorf("extracting %s: %w", p.Primary.Name(), err)
		}
	}

	if r.HasManifest() {
		for _, m := range r.ManifestOnly() {
			if !matches(globs, m.Name()) {
				continue
			}

			if err := extractOne(targetDir, m, nil, subtextures, &includes); err != nil {
				return fmt.Errorf("extracting manifest entry %s: %w", m.Name(), err)
			}
		}
	}

	if len(includes) > 0 {
		if err := writeIncludesList(targetDir, includes); err != nil {
			return err
		}
	}

	return nil
}

func writeIncludesList(targetDir string, includes []string) error {
	dir := filepath.Join(targetDir, "manifest")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, name := range includes {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}

	return os.WriteFile(filepath.Join(dir, "includes.txt"), buf.Bytes(), 0o644)
}

// extractOne dispatches a single entry to its type-specific extraction path,
// appending to includes when e is an include entry.
func extractOne(targetDir string, e entry.Entry, manifest entry.Entry, subtextures bool, includes *[]string) error {
	short := entry.ShortName(e.Name())

	switch v := e.(type) {
	case *entry.TextureEntry:
		return extractTexture(targetDir, short, v, manifest, subtextures)
	case *entry.Texture3DEntry:
		return writeRawXNB(filepath.Join(targetDir, "textures", "3d"), short, v.Data)
	case *entry.AtlasEntry:
		return extractAtlas(targetDir, short, v)
	case *entry.BinkAtlasEntry:
		return extractRawEntry(filepath.Join(targetDir, "manifest"), short, v)
	case *entry.BinkEntry:
		return extractRawEntry(filepath.Join(targetDir, "bink_refs"), short, v)
	case *entry.SpineEntry:
		return extractRawEntry(filepath.Join(targetDir, "spines"), short, v)
	case *entry.IncludeEntry:
		*includes = append(*includes, v.EntryName)
		return nil
	default:
		return extractRawEntry(targetDir, short, e)
	}
}

func extractTexture(targetDir, short string, tex *entry.TextureEntry, manifest entry.Entry, subtextures bool) error {
	img, decodeErr := imageio.DecodeXNB(tex.Data)

	atlas, hasAtlas := manifest.(*entry.AtlasEntry)

	if decodeErr != nil {
		return writeRawXNB(filepath.Join(targetDir, "textures"), short, tex.Data)
	}

	if hasAtlas && atlas != nil {
		if subtextures {
			return exportSubtextures(targetDir, short, img, atlas)
		}
		return imageio.Export(filepath.Join(targetDir, "textures", "atlases", short+".png"), img)
	}

	return imageio.Export(filepath.Join(targetDir, "textures", short+".png"), img)
}

func exportSubtextures(targetDir, short string, sheet image.Image, atlas *entry.AtlasEntry) error {
	dir := filepath.Join(targetDir, "textures", "atlases", short)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	cropper, ok := sheet.(subImager)
	if !ok {
		return fmt.Errorf("image does not support cropping")
	}

	for _, sub := range atlas.SubAtlases {
		r := image.Rect(
			int(sub.Rect.X), int(sub.Rect.Y),
			int(sub.Rect.X+sub.Rect.Width), int(sub.Rect.Y+sub.Rect.Height),
		)

		cropped := cropper.SubImage(r)
		if err := imageio.Export(filepath.Join(dir, entry.ShortName(sub.Name)+".png"), cropped); err != nil {
			return err
		}
	}

	return nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func extractAtlas(targetDir, short string, atlas *entry.AtlasEntry) error {
	dir := filepath.Join(targetDir, "manifest")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := atlasjson.Marshal(atlas)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, short+".atlas.json"), data, 0o644)
}

func writeRawXNB(dir, short string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, short+".xnb"), data, 0o644)
}

// extractRawEntry is the fallback every entry type supports: write the
// type byte plus the body the entry's WriteTo re-encodes. BinkEntry.WriteTo
// writes nothing, so a bink entry's file holds only its type byte.
func extractRawEntry(dir, short string, e entry.Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := entry.Encode(w, e); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, short+".entry"), buf.Bytes(), 0o644)
}
