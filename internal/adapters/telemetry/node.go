package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/csso/internal/adapters/logger"
	"go.trai.ch/csso/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

// TracerName is the instrumentation scope of every span.
const TracerName = "go.trai.ch/csso"

func init() {
	graft.Register(graft.Node[ports.TracerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TracerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(verbose bool) ports.Tracer {
				if !verbose {
					return NewNoOpTracer()
				}
				return NewOTelTracer(TracerName, NewBridge(log))
			}, nil
		},
	})
}
