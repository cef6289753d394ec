package ports

import "go.sortd.dev/envboot/internal/core/domain"

// ManifestStore persists the freeze manifest and its export state.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Write overwrites the manifest file with the rendered manifest and
	// records export state. changed reports whether the content hash moved
	// since the previous export.
	Write(m domain.Manifest) (info domain.ExportInfo, changed bool, err error)

	// Read parses the manifest file as last written.
	// Returns a zero Manifest when the file does not exist.
	Read() (domain.Manifest, error)
}
