package deppth

import "github.com/quaerus/deppth/archive"

// Patch rebuilds packagePath by replacing or appending entries from one or
// more patch packages; see archive.Patch for the full algorithm.
func Patch(packagePath string, patchPaths []string, log func(string)) error {
	return archive.Patch(packagePath, patchPaths, log)
}
