// Package pipeline runs one minification pass: read, resolve source maps,
// minify, assemble and write.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/zerr"
)

// Streams are the standard streams of the process.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Pipeline runs passes with a fixed engine, file system and tracer.
type Pipeline struct {
	fs      ports.FileSystem
	engine  ports.Engine
	tracer  ports.Tracer
	logger  ports.Logger
	streams Streams
}

// New creates a Pipeline.
func New(fs ports.FileSystem, engine ports.Engine, tracer ports.Tracer, logger ports.Logger, streams Streams) *Pipeline {
	return &Pipeline{
		fs:      fs,
		engine:  engine,
		tracer:  tracer,
		logger:  logger,
		streams: streams,
	}
}

// Run executes one pass for cfg.
//
//nolint:cyclop // orchestration function
func (p *Pipeline) Run(ctx context.Context, cfg *domain.Config) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	heapBefore := mem.HeapAlloc
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "pass")
	defer span.End()
	span.SetAttribute("engine", p.engine.Name())

	var source string
	err := p.stage(ctx, "read", func(_ context.Context, s ports.Span) error {
		var err error
		source, err = p.read(cfg)
		s.SetAttribute("bytes", len(source))
		return err
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	var plan domain.SourceMapPlan
	err = p.stage(ctx, "resolve", func(_ context.Context, s ports.Span) error {
		var err error
		resolver := NewResolver(p.fs, cfg.WorkDir)
		plan, err = resolver.Resolve(source, cfg.InputSourceMap, cfg.SourceMap, cfg.InputFile, cfg.OutputFile)
		s.SetAttribute("output_map", string(plan.Output))
		if plan.InputMapOrigin != "" {
			s.SetAttribute("input_map", plan.InputMapOrigin)
		}
		return err
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	p.logPlan(plan)

	var res *domain.MinifyResult
	err = p.stage(ctx, "minify", func(ctx context.Context, s ports.Span) error {
		var err error
		res, err = NewInvoker(p.engine).Invoke(ctx, source, cfg, plan)
		s.SetAttribute("declaration_list", cfg.DeclarationList)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	if plan.Generate() && res.Map == nil {
		p.logger.Debug(p.engine.Name() + " returned no source map")
	}

	var out Assembled
	err = p.stage(ctx, "assemble", func(_ context.Context, _ ports.Span) error {
		var err error
		out, err = NewAssembler(p.fs).Assemble(res, plan, cfg)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = p.stage(ctx, "write", func(_ context.Context, s ports.Span) error {
		s.SetAttribute("bytes", len(out.CSS))
		return p.write(cfg, out.CSS)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	if cfg.Statistics {
		runtime.ReadMemStats(&mem)
		WriteStats(p.streams.Stderr, Stats{
			Filename:   displayName(cfg),
			MapOrigin:  plan.InputMapOrigin,
			Original:   len(source),
			Result:     len(out.CSS),
			Annotation: len(out.Annotation),
			Elapsed:    time.Since(start),
			HeapDelta:  int64(mem.HeapAlloc) - int64(heapBefore), //nolint:gosec // heap sizes fit in int64
		})
	}

	return nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, ports.Span) error) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (p *Pipeline) read(cfg *domain.Config) (string, error) {
	if cfg.IsStdin() {
		if p.streams.Stdin == nil {
			return "", zerr.With(zerr.Wrap(domain.ErrInputReadFailed, "no standard input"), "input", domain.StdinMarker)
		}
		b, err := io.ReadAll(p.streams.Stdin)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "input", domain.StdinMarker)
		}
		return string(b), nil
	}

	b, err := p.fs.ReadFile(cfg.InputFile)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "input", cfg.InputFile)
	}
	return string(b), nil
}

func (p *Pipeline) write(cfg *domain.Config, css string) error {
	if cfg.OutputFile != "" {
		if err := p.fs.WriteFile(cfg.OutputFile, []byte(css)); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "output", cfg.OutputFile)
		}
		return nil
	}

	if _, err := io.WriteString(p.streams.Stdout, css+"\n"); err != nil {
		return zerr.Wrap(err, domain.ErrOutputWriteFailed.Error())
	}
	return nil
}

func (p *Pipeline) logPlan(plan domain.SourceMapPlan) {
	if !plan.Generate() {
		p.logger.Debug("source map: none")
		return
	}
	dest := "inline"
	if !plan.Inline() {
		dest = plan.OutputFile
	}
	origin := plan.InputMapOrigin
	if origin == "" {
		origin = "none"
	}
	p.logger.Debug(fmt.Sprintf("source map: %s (input map: %s)", dest, origin))
}
