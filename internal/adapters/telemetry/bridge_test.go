package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/press/internal/adapters/telemetry"
	"go.trai.ch/press/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_OnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	renderer.EXPECT().OnTaskStart(gomock.Any(), "", "html", gomock.Any()).Times(1)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "html")
	defer span.End()

	rw, ok := span.(sdktrace.ReadWriteSpan)
	require.True(t, ok)
	bridge.OnStart(context.Background(), rw)
}

func TestBridge_FlattensGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer, "assets")

	tp := sdktrace.NewTracerProvider()
	tracer := tp.Tracer("test")
	buildCtx, build := tracer.Start(context.Background(), "build")
	assetsCtx, assets := tracer.Start(buildCtx, "assets")
	_, html := tracer.Start(assetsCtx, "html")

	buildID := build.SpanContext().SpanID().String()
	htmlID := html.SpanContext().SpanID().String()

	gomock.InOrder(
		renderer.EXPECT().OnTaskStart(buildID, "", "build", gomock.Any()),
		renderer.EXPECT().OnTaskStart(htmlID, buildID, "html", gomock.Any()),
		renderer.EXPECT().OnTaskComplete(htmlID, gomock.Any(), nil),
		renderer.EXPECT().OnTaskComplete(buildID, gomock.Any(), nil),
	)

	bridge.OnStart(context.Background(), build.(sdktrace.ReadWriteSpan))
	bridge.OnStart(buildCtx, assets.(sdktrace.ReadWriteSpan))
	bridge.OnStart(assetsCtx, html.(sdktrace.ReadWriteSpan))

	html.End()
	assets.End()
	build.End()
	bridge.OnEnd(html.(sdktrace.ReadOnlySpan))
	bridge.OnEnd(assets.(sdktrace.ReadOnlySpan))
	bridge.OnEnd(build.(sdktrace.ReadOnlySpan))
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, err error) {
			require.Error(t, err)
			assert.Equal(t, "sass exploded", err.Error())
		})

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "styles")
	span.SetStatus(codes.Error, "sass exploded")
	span.End()

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	bridge.OnEnd(ro)
}

func TestBridge_NilRenderer(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "copy")
	span.End()

	bridge.OnStart(ctx, span.(sdktrace.ReadWriteSpan))
	bridge.OnEnd(span.(sdktrace.ReadOnlySpan))
	require.NoError(t, bridge.ForceFlush(ctx))
	require.NoError(t, bridge.Shutdown(ctx))
}
