package ports

import "go.trai.ch/scenarios/internal/core/domain"

// ManifestStore reads and writes manifest documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Read parses the manifest at path.
	Read(path string) (*domain.Object, error)

	// Write stores manifest as path, formatted with stable key order and unescaped slashes.
	Write(path string, manifest *domain.Object) error

	// SetConfig sets config.<key> in the manifest at path, leaving everything else untouched.
	SetConfig(path, key, value string) error
}
