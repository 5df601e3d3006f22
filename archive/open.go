package archive

import (
	"fmt"

	"github.com/quaerus/deppth/compress"
	"github.com/quaerus/deppth/container"
	"github.com/quaerus/deppth/errs"
	"github.com/quaerus/deppth/format"
)

// Mode selects which of the four archive entry points OpenPackage uses.
type Mode int

const (
	// ModeRead opens an existing package for reading.
	ModeRead Mode = iota
	// ModeWrite creates a new package for writing.
	ModeWrite
	// ModeReadManifest opens an existing package and its manifest sidecar.
	ModeReadManifest
	// ModeWriteManifest creates a new package and its manifest sidecar.
	ModeWriteManifest
)

// OpenPackage opens or creates path according to mode. compressorName and
// version are only used (and validated) when creating a package; for reads
// they're inferred from the package header.
func OpenPackage(path string, mode Mode, compressorName string, version format.Version) (any, error) {
	switch mode {
	case ModeRead:
		return OpenReader(path, false)
	case ModeReadManifest:
		return OpenManifestReader(path)
	case ModeWrite:
		if _, err := compress.ByName(compressorName); err != nil {
			return nil, err
		}
		if !version.Valid() {
			return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
		}

		return CreateWriter(path, container.ModeTruncate, compressorName, version)
	case ModeWriteManifest:
		if _, err := compress.ByName(compressorName); err != nil {
			return nil, err
		}
		if !version.Valid() {
			return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
		}

		return CreateManifestWriter(path, container.ModeTruncate, compressorName, version)
	default:
		return nil, fmt.Errorf("%w: archive mode %d", errs.ErrMalformedInput, mode)
	}
}
