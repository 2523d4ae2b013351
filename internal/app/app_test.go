package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/csso/internal/adapters/telemetry"
	"go.trai.ch/csso/internal/app"
	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/csso/internal/core/ports/mocks"
	"go.trai.ch/csso/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

const inputFile = "/work/in.css"

type fixture struct {
	loader  *mocks.MockConfigLoader
	fs      *mocks.MockFileSystem
	engines *mocks.MockEngineRegistry
	engine  *mocks.MockEngine
	logger  *mocks.MockLogger
	watcher *mocks.MockWatcher
	stdout  *bytes.Buffer
	verbose []bool
	app     *app.App
}

func newFixture(t *testing.T, stdin string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		fs:      mocks.NewMockFileSystem(ctrl),
		engines: mocks.NewMockEngineRegistry(ctrl),
		engine:  mocks.NewMockEngine(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
		stdout:  &bytes.Buffer{},
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.engine.EXPECT().Name().Return("fake").AnyTimes()
	f.engine.EXPECT().Version().Return("1.2.3").AnyTimes()

	tracers := func(verbose bool) ports.Tracer {
		f.verbose = append(f.verbose, verbose)
		return telemetry.NewNoOpTracer()
	}
	watchers := func() (ports.Watcher, error) { return f.watcher, nil }

	f.app = app.New(f.loader, f.fs, f.engines, f.logger, tracers, watchers).
		WithStreams(pipeline.Streams{
			Stdin:  strings.NewReader(stdin),
			Stdout: f.stdout,
			Stderr: &bytes.Buffer{},
		})
	return f
}

func events(evs ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, ev := range evs {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Run_Once(t *testing.T) {
	f := newFixture(t, "a { color: red }")
	flags := domain.Flags{Debug: "2"}
	cfg := &domain.Config{InputFile: domain.StdinMarker, Engine: "fake", Debug: 2}

	f.loader.EXPECT().Load("/work", flags).Return(cfg, nil)
	f.engines.EXPECT().Get("fake").Return(f.engine, nil)
	f.engine.EXPECT().Minify(gomock.Any(), "a { color: red }", gomock.Any()).Return(domain.Text("a{color:red}"), nil)

	require.NoError(t, f.app.Run(context.Background(), "/work", flags))
	assert.Equal(t, "a{color:red}\n", f.stdout.String())
	assert.Equal(t, []bool{true}, f.verbose)
}

func TestApp_Run_ConfigError(t *testing.T) {
	f := newFixture(t, "")
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, domain.NewConfigError("wrong value for `comments` option: x"))

	err := f.app.Run(context.Background(), "/work", domain.Flags{})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Empty(t, f.stdout.String())
}

func TestApp_Run_UnknownEngine(t *testing.T) {
	f := newFixture(t, "")
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&domain.Config{Engine: "nope"}, nil)
	f.engines.EXPECT().Get("nope").Return(nil, domain.NewConfigError("unknown engine: nope"))

	err := f.app.Run(context.Background(), "/work", domain.Flags{})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApp_Run_Watch(t *testing.T) {
	f := newFixture(t, "")
	cfg := &domain.Config{InputFile: inputFile, Watch: true}

	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil)
	f.engines.EXPECT().Get(gomock.Any()).Return(f.engine, nil)
	f.fs.EXPECT().ReadFile(inputFile).Return([]byte("a{}"), nil).Times(3)

	gomock.InOrder(
		f.engine.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Text("a{}"), nil),
		f.engine.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrMinifyFailed),
		f.engine.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Text("b{}"), nil),
	)

	f.watcher.EXPECT().Start(gomock.Any(), inputFile).Return(nil)
	f.watcher.EXPECT().Events().Return(events(
		ports.WatchEvent{Path: inputFile, Operation: ports.OpWrite},
		ports.WatchEvent{Path: inputFile, Operation: ports.OpCreate},
	))
	f.watcher.EXPECT().Stop().Return(nil)
	f.logger.EXPECT().Info(gomock.Any())
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrMinifyFailed)
	})

	require.NoError(t, f.app.Run(context.Background(), "/work", domain.Flags{}))
	assert.Equal(t, "a{}\nb{}\n", f.stdout.String())
}

func TestApp_Run_WatchStopsOnIOError(t *testing.T) {
	f := newFixture(t, "")
	cfg := &domain.Config{InputFile: inputFile, Watch: true}

	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil)
	f.engines.EXPECT().Get(gomock.Any()).Return(f.engine, nil)
	gomock.InOrder(
		f.fs.EXPECT().ReadFile(inputFile).Return([]byte("a{}"), nil),
		f.fs.EXPECT().ReadFile(inputFile).Return(nil, errors.New("file vanished")),
	)
	f.engine.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Text("a{}"), nil)

	f.watcher.EXPECT().Start(gomock.Any(), inputFile).Return(nil)
	f.watcher.EXPECT().Events().Return(events(
		ports.WatchEvent{Path: inputFile, Operation: ports.OpWrite},
		ports.WatchEvent{Path: inputFile, Operation: ports.OpWrite},
	))
	f.watcher.EXPECT().Stop().Return(nil)
	f.logger.EXPECT().Info(gomock.Any())

	err := f.app.Run(context.Background(), "/work", domain.Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInputReadFailed.Error())
}

func TestApp_Run_WatchStartFails(t *testing.T) {
	f := newFixture(t, "")
	cfg := &domain.Config{InputFile: inputFile, Watch: true}

	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil)
	f.engines.EXPECT().Get(gomock.Any()).Return(f.engine, nil)
	f.fs.EXPECT().ReadFile(inputFile).Return([]byte("a{}"), nil)
	f.engine.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Text("a{}"), nil)
	f.watcher.EXPECT().Start(gomock.Any(), inputFile).Return(domain.ErrWatchFailed)
	f.watcher.EXPECT().Stop().Return(nil)

	err := f.app.Run(context.Background(), "/work", domain.Flags{})
	require.ErrorIs(t, err, domain.ErrWatchFailed)
}

func TestApp_EngineVersion(t *testing.T) {
	f := newFixture(t, "")
	f.engines.EXPECT().Get("").Return(f.engine, nil)

	v, err := f.app.EngineVersion("")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v)
}
