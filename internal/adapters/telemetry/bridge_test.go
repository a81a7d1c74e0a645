package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scenarios/internal/adapters/telemetry"
	"go.trai.ch/scenarios/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_Spans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var lines []string
	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).Times(2)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := tp.Tracer("test").Start(context.Background(), "scenario.materialize")
	span.SetAttributes(attribute.String("scenario", "php8"))
	span.End()

	require.Len(t, lines, 2)
	assert.Equal(t, "scenario.materialize started", lines[0])
	assert.Regexp(t, `^scenario\.materialize finished in \S+$`, lines[1])
}

func TestBridge_StartAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("scenario.install started scenario=php8 strategy=lowest")
	log.EXPECT().Debug(gomock.Any())

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := tp.Tracer("test").Start(context.Background(), "scenario.install",
		trace.WithAttributes(attribute.String("scenario", "php8"), attribute.String("strategy", "lowest")))
	span.End()
}

func TestBridge_FailedSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var last string
	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) { last = msg }).Times(2)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := tp.Tracer("test").Start(context.Background(), "scenarios.update")
	span.RecordError(errors.New("boom"))
	span.SetStatus(codes.Error, "boom")
	span.End()

	assert.Regexp(t, `^scenarios\.update failed after \S+: boom$`, last)
}

func TestBridge_NilLogger(_ *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()
}

func TestProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).Times(2)

	p := telemetry.NewProvider(log)
	_, span := p.Tracer("test").Start(context.Background(), "licenses.update")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}
