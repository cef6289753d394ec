package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.sortd.dev/envboot/internal/adapters/logger"
	"go.sortd.dev/envboot/internal/adapters/shell"
	"go.sortd.dev/envboot/internal/core/ports"
)

const NodeID graft.ID = "adapter.env_factory"

func init() {
	graft.Register(graft.Node[ports.EnvironmentFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentFactory, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(executor, log), nil
		},
	})
}
