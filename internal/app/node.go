package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.sortd.dev/envboot/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.sortd.dev/envboot/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.sortd.dev/envboot/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.sortd.dev/envboot/internal/adapters/pip"                //nolint:depguard // Wired in app layer
	"go.sortd.dev/envboot/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.sortd.dev/envboot/internal/adapters/venv"               //nolint:depguard // Wired in app layer
	"go.sortd.dev/envboot/internal/core/ports"
	"go.sortd.dev/envboot/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			venv.NodeID,
			pip.NodeID,
			runner.NodeID,
			manifest.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			envFactory, err := graft.Dep[ports.EnvironmentFactory](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}

			run, err := graft.Dep[*runner.Runner](ctx)
			if err != nil {
				return nil, err
			}

			storeFor, err := graft.Dep[manifest.Factory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, envFactory, installer, run, storeFor, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

// Components contains the initialized application components needed by the
// CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
