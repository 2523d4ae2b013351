package ports

import (
	"context"

	"go.trai.ch/csso/internal/core/domain"
)

// Engine is an external CSS minifier.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// Name returns the name the engine is selected by.
	Name() string
	// Version returns the engine's release version.
	Version() string
	// Minify minifies a full stylesheet.
	Minify(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error)
	// MinifyBlock minifies a bare declaration list such as a style attribute.
	MinifyBlock(ctx context.Context, source string, opts domain.MinifyOptions) (domain.EngineOutput, error)
}

// EngineRegistry looks engines up by the name given with --engine.
type EngineRegistry interface {
	// Get returns the engine called name, or the default engine for an empty name.
	Get(name string) (Engine, error)
}
