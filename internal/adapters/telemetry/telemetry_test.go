package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/csso/internal/adapters/telemetry"
	"go.trai.ch/csso/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("csso", recorder)

	_, span := tracer.Start(context.Background(), "minify")
	span.SetAttribute("engine", "esbuild")
	span.SetAttribute("bytes", 42)
	span.RecordError(errors.New("boom"))
	span.End()
	require.NoError(t, tracer.Shutdown(context.Background()))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "minify", ended[0].Name())
	assert.Equal(t, "boom", ended[0].Status().Description)

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, map[string]string{"engine": "esbuild", "bytes": "42"}, attrs)
}

func TestBridge_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var got string
	log.EXPECT().Debug(gomock.Any()).DoAndReturn(func(msg string) { got = msg })

	tracer := telemetry.NewOTelTracer("csso", telemetry.NewBridge(log))
	_, span := tracer.Start(context.Background(), "resolve")
	span.SetAttribute("input_map", "<inline>")
	span.End()
	require.NoError(t, tracer.Shutdown(context.Background()))

	assert.Contains(t, got, "resolve: ")
	assert.Contains(t, got, "input_map=<inline>")
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	gotCtx, span := tracer.Start(ctx, "noop")
	assert.Equal(t, ctx, gotCtx)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
	assert.NoError(t, tracer.Shutdown(ctx))
}
