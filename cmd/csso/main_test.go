package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/csso/cmd/csso/commands"
	"go.trai.ch/csso/internal/adapters/telemetry"
	"go.trai.ch/csso/internal/app"
	"go.trai.ch/csso/internal/core/domain"
	"go.trai.ch/csso/internal/core/ports"
	"go.trai.ch/csso/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	engines  *mocks.MockEngineRegistry
	logger   *mocks.MockLogger
	provider ComponentProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		engines: mocks.NewMockEngineRegistry(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	application := app.New(
		f.loader,
		mocks.NewMockFileSystem(ctrl),
		f.engines,
		f.logger,
		func(bool) ports.Tracer { return telemetry.NewNoOpTracer() },
		func() (ports.Watcher, error) { return mocks.NewMockWatcher(ctrl), nil },
	)
	f.provider = func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: f.logger}, func() {}, nil
	}
	return f
}

func nonInteractive(cli *commands.CLI) {
	cli.SetInteractive(func() bool { return false })
}

// TestRun_Version verifies that the version flag succeeds.
func TestRun_Version(t *testing.T) {
	f := newFixture(t)
	engine := mocks.NewMockEngine(gomock.NewController(t))
	engine.EXPECT().Version().Return("0.25.0")
	f.engines.EXPECT().Get("").Return(engine, nil)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"-v"}, stderr, f.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"-v"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ConfigError verifies that configuration errors are logged and exit with 2.
func TestRun_ConfigError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewConfigError("wrong value for `comments` option: all"))
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"--comments", "all"}, stderr, f.provider, nonInteractive)

	assert.Equal(t, 2, exitCode)
	assert.Empty(t, stderr.String())
}

// TestRun_UnexpectedError verifies that other failures print the error report and exit with 1.
func TestRun_UnexpectedError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInputReadFailed)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"in.css"}, stderr, f.provider, nonInteractive)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), domain.ErrInputReadFailed.Error())
}

// TestRun_UsageError verifies that flag errors exit with 2.
func TestRun_UsageError(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Error(gomock.Any())

	exitCode := run(context.Background(), []string{"--no-such-flag"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 2, exitCode)
}
