// Package app implements the application layer for csso.
package app

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/csso/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// debugSetter is implemented by loggers whose verbosity can change at runtime.
type debugSetter interface {
	SetDebug(enable bool)
}

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	fs       ports.FileSystem
	engines  ports.EngineRegistry
	logger   ports.Logger
	tracers  ports.TracerFactory
	watchers ports.WatcherFactory
	streams  pipeline.Streams
}

// New creates a new App instance reading from stdin and writing to stdout and
// stderr.
func New(
	loader ports.ConfigLoader,
	fs ports.FileSystem,
	engines ports.EngineRegistry,
	log ports.Logger,
	tracers ports.TracerFactory,
	watchers ports.WatcherFactory,
) *App {
	return &App{
		loader:   loader,
		fs:       fs,
		engines:  engines,
		logger:   log,
		tracers:  tracers,
		watchers: watchers,
		streams: pipeline.Streams{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	}
}

// WithStreams replaces the standard streams. Used for testing.
func (a *App) WithStreams(streams pipeline.Streams) *App {
	a.streams = streams
	return a
}

// Run minifies the configured input once and, in watch mode, again after every
// change of the input file until ctx is cancelled.
func (a *App) Run(ctx context.Context, workDir string, flags domain.Flags) error {
	cfg, err := a.loader.Load(workDir, flags)
	if err != nil {
		return err
	}

	if l, ok := a.logger.(debugSetter); ok {
		l.SetDebug(cfg.Debug > 0)
	}

	engine, err := a.engines.Get(cfg.Engine)
	if err != nil {
		return err
	}
	a.logger.Debug("engine: " + engine.Name() + " " + engine.Version())

	tracer := a.tracers(cfg.Debug >= 2)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	p := pipeline.New(a.fs, engine, tracer, a.logger, a.streams)

	if err := p.Run(ctx, cfg); err != nil {
		if !cfg.Watch || !errors.Is(err, domain.ErrMinifyFailed) {
			return err
		}
		a.logger.Error(err)
	}

	if !cfg.Watch {
		return nil
	}
	return a.watch(ctx, cfg, p)
}

// EngineVersion returns the version of the engine called name.
func (a *App) EngineVersion(name string) (string, error) {
	engine, err := a.engines.Get(name)
	if err != nil {
		return "", err
	}
	return engine.Version(), nil
}

// watch reruns p for every change of the input file. Engine failures are logged
// and the loop goes on; any other error ends it.
func (a *App) watch(ctx context.Context, cfg *domain.Config, p *pipeline.Pipeline) error {
	w, err := a.watchers()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	g, ctx := errgroup.WithContext(ctx)
	if err := w.Start(ctx, cfg.InputFile); err != nil {
		_ = w.Stop()
		return err
	}
	a.logger.Info("watching " + cfg.InputFile + " for changes")

	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for range w.Events() {
			a.logger.Debug("change detected, minifying " + cfg.InputFile)
			if err := p.Run(ctx, cfg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if errors.Is(err, domain.ErrMinifyFailed) {
					a.logger.Error(err)
					continue
				}
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-done:
		}
		return w.Stop()
	})

	return g.Wait()
}
