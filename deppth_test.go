package deppth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaerus/deppth/archive"
	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/entry"
	"github.com/quaerus/deppth/format"
)

func writeFixturePackage(t *testing.T, path string) {
	t.Helper()

	w, err := archive.CreateWriter(path, container.ModeExclusive, "uncompressed", format.VersionHades)
	require.NoError(t, err)

	require.NoError(t, w.WriteEntry(&entry.IncludeEntry{EntryName: `Packages\Menus`}))
	require.NoError(t, w.WriteEntry(&entry.IncludeEntry{EntryName: `Packages\Combat`}))
	require.NoError(t, w.Close())
}

func TestListFiltersByShortNamePattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.pkg")
	writeFixturePackage(t, path)

	var lines []string
	err := List(path, []string{"Menus"}, func(s string) { lines = append(lines, s) })
	require.NoError(t, err)

	assert.Equal(t, []string{`Packages\Menus`}, lines)
}

func TestListNoPatternsMatchesAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.pkg")
	writeFixturePackage(t, path)

	var lines []string
	err := List(path, nil, func(s string) { lines = append(lines, s) })
	require.NoError(t, err)

	assert.Len(t, lines, 2)
}

func TestExtractIncludeWritesManifestList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.pkg")
	writeFixturePackage(t, path)

	target := t.TempDir()
	require.NoError(t, Extract(path, target, nil, false, nil))

	data, err := os.ReadFile(filepath.Join(target, "manifest", "includes.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Packages\Menus`)
	assert.Contains(t, string(data), `Packages\Combat`)
}
