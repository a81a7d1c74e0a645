// Package telemetry configures OpenTelemetry tracing for the engine.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scenarios/internal/core/ports"
)

// Provider owns the tracer provider whose spans are reported through a Bridge.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider creates a tracer provider with a Bridge to logger as its only span processor.
func NewProvider(logger ports.Logger) *Provider {
	return &Provider{
		tp: sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(NewBridge(logger)),
		),
	}
}

// Tracer returns a named tracer from this provider.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// Install registers the provider as the global one, so that otel.Tracer
// callers report through it.
func (p *Provider) Install() {
	otel.SetTracerProvider(p.tp)
}

// Shutdown ends span processing.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
