package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.sortd.dev/envboot/internal/adapters/logger"
	"go.sortd.dev/envboot/internal/adapters/telemetry/progrock"
	"go.sortd.dev/envboot/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(telemetry, log), nil
		},
	})
}
