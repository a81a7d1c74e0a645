package ports

import "go.trai.ch/scenarios/internal/core/domain"

// ConfigLoader defines the interface for resolving runtime settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the settings for the project rooted at cwd.
	Load(cwd string) (*domain.Settings, error)
}
