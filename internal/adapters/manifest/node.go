package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.sortd.dev/envboot/internal/core/ports"
)

// Factory builds a ManifestStore for the manifest path resolved from config.
// The path is only known once the setup plan has been loaded, so the store
// itself cannot be a cacheable node.
type Factory func(manifestPath string) (ports.ManifestStore, error)

const NodeID graft.ID = "adapter.manifest_store"

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (Factory, error) {
			return func(manifestPath string) (ports.ManifestStore, error) {
				return NewStore(manifestPath)
			}, nil
		},
	})
}
