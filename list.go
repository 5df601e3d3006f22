// Package deppth is the public façade over the package I/O engine: list,
// extract, pack, and patch operations consumed by the cmd/deppth CLI
// collaborator (or any other caller embedding the engine).
package deppth

import (
	"fmt"
	"io"

	"github.com/gobwas/glob"

	"github.com/quaerus/deppth/archive"
	"github.com/quaerus/deppth/entry"
)

// noLog is used whenever a caller passes a nil log sink.
func noLog(string) {}

func logOrNoop(log func(string)) func(string) {
	if log == nil {
		return noLog
	}
	return log
}

// compileMatchers compiles patterns into glob matchers. A nil or empty
// patterns list matches everything.
func compileMatchers(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
		}
		globs[i] = g
	}

	return globs, nil
}

// matches reports whether name's short form satisfies any of globs. No
// globs means match everything.
func matches(globs []glob.Glob, name string) bool {
	if len(globs) == 0 {
		return true
	}

	short := entry.ShortName(name)
	for _, g := range globs {
		if g.Match(short) {
			return true
		}
	}

	return false
}

// List streams a package's primary entries, logging each matched entry's
// name and, for atlas manifest companions, each sub-atlas name indented
// beneath it.
func List(packagePath string, patterns []string, log func(string)) error {
	log = logOrNoop(log)

	globs, err := compileMatchers(patterns)
	if err != nil {
		return err
	}

	opened, err := archive.OpenPackage(packagePath, archive.ModeReadManifest, "", 0)
	if err != nil {
		return err
	}
	r := opened.(*archive.ManifestReader)
	defer r.Close()

	for {
		p, err := r.ReadEntry()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		if !matches(globs, p.Primary.Name()) {
			continue
		}

		log(p.Primary.Name())

		atlas, ok := p.Manifest.(*entry.AtlasEntry)
		if !ok || atlas == nil {
			continue
		}

		for _, sub := range atlas.SubAtlases {
			log("  " + sub.Name)
		}
	}
}
