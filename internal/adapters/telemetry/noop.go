package telemetry

import (
	"context"

	"go.trai.ch/press/internal/core/ports"
)

var _ ports.Tracer = NoOpTracer{}

// NoOpTracer is a ports.Tracer that records nothing.
type NoOpTracer struct{}

// Start returns ctx unchanged and a span that ignores every call.
func (NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}
