package includer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/core/ports"
)

// NodeID is the unique identifier for the HTML includer Graft node.
const NodeID graft.ID = "adapter.includer"

func init() {
	graft.Register(graft.Node[ports.Includer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Includer, error) {
			return New(), nil
		},
	})
}
