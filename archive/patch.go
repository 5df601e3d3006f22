package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/internal/nameindex"
)

// Patch rebuilds the package at name by replacing or appending entries from
// one or more patch packages, each of which must itself be a valid
// package+manifest pair. Entries present in a later patch path override
// entries from an earlier one. log receives progress messages; pass nil to
// discard them.
func Patch(name string, patchPaths []string, log func(string)) error {
	if log == nil {
		log = func(string) {}
	}

	oldPath := name + ".old"
	manifestPath := ManifestPath(name)
	oldManifestPath := ManifestPath(oldPath)

	if err := os.Rename(name, oldPath); err != nil {
		return fmt.Errorf("patch: rename package aside: %w", err)
	}
	if err := os.Rename(manifestPath, oldManifestPath); err != nil {
		return fmt.Errorf("patch: rename manifest aside: %w", err)
	}

	patchEntries := nameindex.New[PairedEntry]()
	for _, p := range patchPaths {
		if err := collectPatchEntries(p, patchEntries); err != nil {
			return fmt.Errorf("patch: reading patch %s: %w", p, err)
		}
	}

	source, err := OpenManifestReader(oldPath)
	if err != nil {
		return fmt.Errorf("patch: opening original package: %w", err)
	}
	defer source.Close()

	target, err := CreateManifestWriter(name, container.ModeExclusive, source.CompressorName(), source.Version())
	if err != nil {
		return fmt.Errorf("patch: creating rebuilt package: %w", err)
	}

	for {
		orig, err := source.ReadEntry()
		if err != nil {
			if err == io.EOF {
				break
			}

			target.Close()
			return fmt.Errorf("patch: reading original entry: %w", err)
		}

		entryName := orig.Primary.Name()

		toWrite := orig
		if patched, ok := patchEntries.Get(entryName); ok {
			log(fmt.Sprintf("Applying patch to entry %s", entryName))
			toWrite = patched
			patchEntries.Delete(entryName)
		} else {
			log(fmt.Sprintf("No patch for entry %s, using original entry", entryName))
		}

		if err := target.WriteEntry(toWrite); err != nil {
			target.Close()
			return fmt.Errorf("patch: writing entry %s: %w", entryName, err)
		}
	}

	for _, entryName := range patchEntries.Names() {
		pe, _ := patchEntries.Get(entryName)
		log(fmt.Sprintf("Appending entry %s", entryName))

		if err := target.WriteEntry(pe); err != nil {
			target.Close()
			return fmt.Errorf("patch: appending entry %s: %w", entryName, err)
		}
	}

	if err := target.Close(); err != nil {
		return fmt.Errorf("patch: closing rebuilt package: %w", err)
	}

	if err := os.Remove(oldPath); err != nil {
		return fmt.Errorf("patch: removing old package: %w", err)
	}
	if err := os.Remove(oldManifestPath); err != nil {
		return fmt.Errorf("patch: removing old manifest: %w", err)
	}

	return nil
}

func collectPatchEntries(path string, into *nameindex.Index[PairedEntry]) error {
	r, err := OpenManifestReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	all, err := r.LoadAll()
	if err != nil {
		return err
	}

	for _, pe := range all {
		into.Put(pe.Primary.Name(), pe)
	}

	return nil
}
