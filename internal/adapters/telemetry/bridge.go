package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/csso/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and reports every finished span to
// the logger as a debug line with its duration.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	msg := fmt.Sprintf("%s: %s", s.Name(), s.EndTime().Sub(s.StartTime()))
	for _, attr := range s.Attributes() {
		msg += fmt.Sprintf(" %s=%s", attr.Key, attr.Value.Emit())
	}
	if s.Status().Code == codes.Error {
		msg += " (failed: " + s.Status().Description + ")"
	}
	b.logger.Debug(msg)
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}
