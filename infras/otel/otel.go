package otel

import (
	"backoffice/config"
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	provider oteltrace.TracerProvider
	shutdown func(context.Context) error
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// Shutdown flushes buffered spans.
func (o *otelImpl) Shutdown(ctx context.Context) error {
	return o.shutdown(ctx)
}

// New exports spans over OTLP gRPC. Without an endpoint spans are dropped.
func New(config *config.Config) Otel {
	ctx := context.Background()

	endpoint := config.External.Otel.Endpoint
	if endpoint == "" {
		log.Warn().Msg("No OTLP endpoint configured, tracing disabled")

		return &otelImpl{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.App.Name),
		)),
	)

	otel.SetTracerProvider(traceProvider)

	log.Info().Str("endpoint", endpoint).Msg("Tracing initialized")

	return &otelImpl{
		provider: traceProvider,
		shutdown: traceProvider.Shutdown,
	}
}
