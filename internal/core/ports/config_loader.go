package ports

import "go.sortd.dev/envboot/internal/core/domain"

// ConfigLoader defines the interface for loading the setup plan.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and
	// returns the resolved setup plan. A missing config file is not an
	// error; it yields the built-in defaults.
	Load(cwd string) (*domain.Setup, error)
}
