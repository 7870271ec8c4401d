package sprite

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/core/ports"
)

// NodeID is the unique identifier for the sprite builder Graft node.
const NodeID graft.ID = "adapter.sprite"

func init() {
	graft.Register(graft.Node[ports.SpriteBuilder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SpriteBuilder, error) {
			return New(), nil
		},
	})
}
