// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.sortd.dev/envboot/internal/adapters/config"
	_ "go.sortd.dev/envboot/internal/adapters/logger"
	_ "go.sortd.dev/envboot/internal/adapters/manifest"
	_ "go.sortd.dev/envboot/internal/adapters/pip"
	_ "go.sortd.dev/envboot/internal/adapters/shell"
	_ "go.sortd.dev/envboot/internal/adapters/telemetry/progrock"
	_ "go.sortd.dev/envboot/internal/adapters/venv"
	// Register app and engine nodes.
	_ "go.sortd.dev/envboot/internal/app"
	_ "go.sortd.dev/envboot/internal/engine/runner"
)
