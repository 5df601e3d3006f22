package archive

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/format"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pkg")

	w, err := CreateWriter(path, container.ModeExclusive, "uncompressed", format.VersionHades)
	require.NoError(t, err)

	require.NoError(t, w.WriteEntry(&entry.IncludeEntry{EntryName: "a"}))
	require.NoError(t, w.WriteEntry(&entry.IncludeEntry{EntryName: "b"}))
	require.NoError(t, w.Close())

	r, err := OpenReader(path, false)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.ReadEntry()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Name())

	second, err := r.ReadEntry()
	require.NoError(t, err)
	assert.Equal(t, "b", second.Name())

	_, err = r.ReadEntry()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLoadLastOccurrenceWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.pkg")

	w, err := CreateWriter(path, container.ModeExclusive, "uncompressed", format.VersionHades)
	require.NoError(t, err)
	require.NoError(t, w.WriteEntry(&entry.SpineEntry{EntryName: "same", SpineData: "first"}))
	require.NoError(t, w.WriteEntry(&entry.SpineEntry{EntryName: "same", SpineData: "last"}))
	require.NoError(t, w.Close())

	entries, err := LoadPackage(path, false)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	got, ok := entries["same"]
	assert.True(t, ok)
	assert.Equal(t, "last", got.(*entry.SpineEntry).SpineData)
}

func TestManifestPairing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.pkg")

	mw, err := CreateManifestWriter(path, container.ModeExclusive, "uncompressed", format.VersionHades)
	require.NoError(t, err)

	tex := &entry.TextureEntry{}
	tex.EntryName = "sheet.xnb"
	tex.Size = 0
	tex.Data = nil

	atlas := &entry.AtlasEntry{
		EntryName:             "sheet.xnb",
		IsReference:           true,
		ReferencedTextureName: "sheet.xnb",
	}

	require.NoError(t, mw.WriteEntry(PairedEntry{Primary: tex, Manifest: atlas}))
	require.NoError(t, mw.Close())

	mr, err := OpenManifestReader(path)
	require.NoError(t, err)
	defer mr.Close()

	p, err := mr.ReadEntry()
	require.NoError(t, err)
	assert.Equal(t, "sheet.xnb", p.Primary.Name())
	require.NotNil(t, p.Manifest)
	assert.True(t, p.Manifest.(*entry.AtlasEntry).IsReference)
}

func TestPatchReplacesAndAppends(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.pkg")
	patchPath := filepath.Join(dir, "patch.pkg")

	writeSimplePackage(t, base, map[string]string{"a": "original-a", "b": "original-b"})
	writeSimplePackage(t, patchPath, map[string]string{"a": "patched-a", "c": "new-c"})

	require.NoError(t, Patch(base, []string{patchPath}, nil))

	entries, err := LoadPackage(base, false)
	require.NoError(t, err)

	require.Contains(t, entries, "a")
	require.Contains(t, entries, "b")
	require.Contains(t, entries, "c")

	assert.Equal(t, "patched-a", entries["a"].(*entry.SpineEntry).SpineData)
	assert.Equal(t, "original-b", entries["b"].(*entry.SpineEntry).SpineData)
	assert.Equal(t, "new-c", entries["c"].(*entry.SpineEntry).SpineData)
}

// writeSimplePackage writes a package (with an empty manifest sidecar) whose
// spine entries are named by the map's keys; SpineData carries the map's
// value so the test can tell which revision of an entry survived a patch.
func writeSimplePackage(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	mw, err := CreateManifestWriter(path, container.ModeExclusive, "uncompressed", format.VersionHades)
	require.NoError(t, err)

	for name, marker := range entries {
		e := &entry.SpineEntry{EntryName: name, SpineData: marker}
		require.NoError(t, mw.WriteEntry(PairedEntry{Primary: e}))
	}

	require.NoError(t, mw.Close())
}
