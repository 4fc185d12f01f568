// Package telemetry configures OpenTelemetry tracing for the bertrand
// command.
package telemetry

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gogpu/bertrand"
)

// Environment variables read by Setup.
const (
	EnvEndpoint = "BERTRAND_OTEL_ENDPOINT"
	EnvEnabled  = "BERTRAND_OTEL_ENABLED"
)

// Provider is the tracer provider handed to sampling runs
// (sim.WithTracerProvider). A disabled Provider hands out no-op tracers.
type Provider struct {
	trace.TracerProvider

	sdk *sdktrace.TracerProvider
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.sdk != nil
}

// Shutdown flushes pending spans. It is a no-op for a disabled Provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// Setup builds the Provider for serviceName.
//
// Tracing is opt-in: it is enabled only when BERTRAND_OTEL_ENDPOINT is set
// and BERTRAND_OTEL_ENABLED is not "false". An enabled Provider exports over
// OTLP/HTTP and is also installed as the global provider, with the W3C
// trace-context propagator.
func Setup(ctx context.Context, serviceName string) (*Provider, error) {
	disabled := &Provider{TracerProvider: noop.NewTracerProvider()}

	endpoint := os.Getenv(EnvEndpoint)
	if endpoint == "" || strings.EqualFold(os.Getenv(EnvEnabled), "false") {
		return disabled, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return disabled, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(bertrand.Version),
	))
	if err != nil {
		return disabled, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	bertrand.Logger().Info("telemetry: exporting spans", "endpoint", endpoint, "service", serviceName)
	return &Provider{TracerProvider: tp, sdk: tp}, nil
}
