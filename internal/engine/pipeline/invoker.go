package pipeline

import (
	"context"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/zerr"
)

// Invoker calls the engine and normalises what it returns.
type Invoker struct {
	engine ports.Engine
}

// NewInvoker creates an Invoker for engine.
func NewInvoker(engine ports.Engine) *Invoker {
	return &Invoker{engine: engine}
}

// Invoke minifies source as a stylesheet, or as a declaration list when the
// config says so. The result never holds a nil pointer.
func (i *Invoker) Invoke(
	ctx context.Context,
	source string,
	cfg *domain.Config,
	plan domain.SourceMapPlan,
) (*domain.MinifyResult, error) {
	opts := domain.MinifyOptions{
		Filename:        displayName(cfg),
		SourceMap:       plan.Generate(),
		Usage:           cfg.Usage,
		Restructure:     cfg.Restructure,
		ForceMediaMerge: cfg.ForceMediaMerge,
		Comments:        cfg.Comments,
		Debug:           cfg.Debug,
	}

	minify := i.engine.Minify
	if cfg.DeclarationList {
		minify = i.engine.MinifyBlock
	}

	out, err := minify(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	switch v := out.(type) {
	case domain.Text:
		return &domain.MinifyResult{CSS: string(v)}, nil
	case *domain.MinifyResult:
		if v != nil {
			return v, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrEmptyEngineOutput, "failed to minify input"), "engine", i.engine.Name())
}

// displayName is the input path relative to the working directory with forward
// slashes, or the stdin marker.
func displayName(cfg *domain.Config) string {
	if cfg.IsStdin() {
		return domain.StdinMarker
	}
	return relPath(cfg.WorkDir, cfg.InputFile)
}
