package logger_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/csso/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("some message")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("some warning")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Debug(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("resolved plan")
	assert.Empty(t, buf.String(), "debug output must be off by default")

	lg.SetDebug(true)
	lg.Debug("resolved plan")
	g := goldie.New(t)
	g.Assert(t, "debug_enabled", buf.Bytes())

	buf.Reset()
	lg.SetDebug(false)
	lg.Debug("resolved plan")
	assert.Empty(t, buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name:       "two level chain",
			err:        zerr.Wrap(errors.New("underlying cause"), "wrapped message"),
			goldenName: "error_chain_zerr_two",
		},
		{
			name: "three level chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("open a.css: no such file"), "failed to read input"),
				"failed to process request",
			),
			goldenName: "error_chain_zerr_three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Metadata(t *testing.T) {
	lg, buf := newTestLogger(t)

	cause := zerr.With(zerr.Wrap(errors.New("open /work/a.css.map: no such file"), "failed to read source map"), "path", "/work/a.css.map")
	lg.Error(zerr.With(zerr.Wrap(cause, "failed to resolve source map"), "input", "/work/a.css"))

	g := goldie.New(t)
	g.Assert(t, "error_metadata", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_SetOutput_NilDefaultsToStderr(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

// TestLogger_ConcurrentAccess tests thread-safety of the logger.
func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	done := make(chan struct{}, 5)
	for _, fn := range []func(){
		func() { lg.Info("concurrent info") },
		func() { lg.Warn("concurrent warn") },
		func() { lg.Error(errors.New("concurrent error")) },
		func() { lg.SetDebug(true) },
		func() { lg.SetOutput(&bytes.Buffer{}) },
	} {
		go func() {
			fn()
			done <- struct{}{}
		}()
	}

	for range 5 {
		<-done
	}
}
