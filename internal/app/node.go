package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/csso/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/csso/internal/adapters/engine"    //nolint:depguard // Wired in app layer
	"go.trai.ch/csso/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/csso/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/csso/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/csso/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/csso/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer
// needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.NodeID,
			engine.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	engines, err := graft.Dep[ports.EngineRegistry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracers, err := graft.Dep[ports.TracerFactory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fsys, engines, log, tracers, watchers), nil
}
