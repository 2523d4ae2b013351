package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/csso/internal/adapters/logger"
	"go.trai.ch/csso/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	// The node hands out a factory so no notifier is opened unless --watch is used.
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(log.Error)
			}, nil
		},
	})
}
