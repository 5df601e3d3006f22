package nameindex

import "github.com/cespare/xxhash/v2"

// ID computes a stable 64-bit xxhash digest of an entry name. Index and the
// patch engine key their maps by the name string itself, not by ID.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
