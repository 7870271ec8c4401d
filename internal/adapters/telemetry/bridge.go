package telemetry

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/press/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor to forward task spans to a Renderer.
//
// Spans named in the flatten set are grouping nodes without a task of their own
// (the parallel asset group inside build, for example). They are not rendered and
// their children are attached to the nearest rendered ancestor.
type Bridge struct {
	renderer ports.Renderer
	flatten  map[string]bool

	mu     sync.Mutex
	hidden map[string]string // flattened spanID -> visible parent spanID
}

// NewBridge returns a Bridge rendering every span except those named in flatten.
func NewBridge(renderer ports.Renderer, flatten ...string) *Bridge {
	b := &Bridge{
		renderer: renderer,
		flatten:  make(map[string]bool, len(flatten)),
		hidden:   make(map[string]string),
	}
	for _, name := range flatten {
		b.flatten[name] = true
	}
	return b
}

// OnStart renders a task start unless the span is flattened.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if ps := trace.SpanFromContext(parent).SpanContext(); ps.IsValid() {
		parentID = ps.SpanID().String()
	}

	b.mu.Lock()
	if visible, ok := b.hidden[parentID]; ok {
		parentID = visible
	}
	if b.flatten[s.Name()] {
		b.hidden[sc.SpanID().String()] = parentID
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	b.renderer.OnTaskStart(sc.SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd renders the outcome of a task span. The status description is the failure cause.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	id := sc.SpanID().String()
	b.mu.Lock()
	_, flattened := b.hidden[id]
	delete(b.hidden, id)
	b.mu.Unlock()
	if flattened {
		return
	}

	var err error
	if status := s.Status(); status.Code == codes.Error {
		desc := status.Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
	}
	b.renderer.OnTaskComplete(id, s.EndTime(), err)
}

// ForceFlush does nothing; rendering is synchronous.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error { return nil }
