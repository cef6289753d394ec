package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.sortd.dev/envboot/internal/adapters/shell"
	"go.sortd.dev/envboot/internal/core/ports"
)

const NodeID graft.ID = "adapter.installer"

// DefaultInterpreter drives pip when no activation environment is present.
const DefaultInterpreter = "python3"

func init() {
	graft.Register(graft.Node[ports.PackageInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.PackageInstaller, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(executor, DefaultInterpreter), nil
		},
	})
}
