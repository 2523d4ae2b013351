// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/csso/internal/adapters/config"
	_ "go.trai.ch/csso/internal/adapters/engine"
	_ "go.trai.ch/csso/internal/adapters/fs"
	_ "go.trai.ch/csso/internal/adapters/logger"
	_ "go.trai.ch/csso/internal/adapters/telemetry"
	_ "go.trai.ch/csso/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/csso/internal/app"
)
