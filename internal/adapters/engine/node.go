package engine

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/csso/internal/core/ports"
)

// NodeID is the unique identifier for the engine registry Graft node.
const NodeID graft.ID = "adapter.engine"

func init() {
	graft.Register(graft.Node[ports.EngineRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EngineRegistry, error) {
			return NewRegistry(NewESBuild(), NewTdewolff(), NewCSSMin()), nil
		},
	})
}
