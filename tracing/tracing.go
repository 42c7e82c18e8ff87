// Package tracing provides OpenTelemetry tracing for the Wikipedia MCP server.
// It configures trace exporters and provides utilities for creating spans.
package tracing

import (
	"context"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of every span the server starts
const TracerName = "wikipedia-mcp-server"

// Span attribute keys
const (
	AttrToolName     = attribute.Key("mcp.tool.name")
	AttrToolCategory = attribute.Key("mcp.tool.category")
	AttrToolReadOnly = attribute.Key("mcp.tool.readonly")
	AttrOperation    = attribute.Key("wiki.api.operation")
	AttrEndpoint     = attribute.Key("wiki.api.endpoint")
	AttrPageTitle    = attribute.Key("wiki.page.title")
)

// Config holds tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	OTLPEndpoint   string // If set, uses OTLP exporter; otherwise stdout
	SampleRate     float64
}

// DefaultConfig reads the OTEL_* environment. Tracing is on when
// OTEL_ENABLED=true or an OTLP endpoint is given. OTEL_TRACES_SAMPLER_ARG
// sets the sample ratio; unparsable values sample everything.
func DefaultConfig() Config {
	cfg := Config{
		ServiceName:    TracerName,
		ServiceVersion: "1.0.0",
		Environment:    os.Getenv("OTEL_ENVIRONMENT"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SampleRate:     1.0,
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	cfg.Enabled = os.Getenv("OTEL_ENABLED") == "true" || cfg.OTLPEndpoint != ""
	if arg := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); arg != "" {
		if rate, err := strconv.ParseFloat(arg, 64); err == nil {
			cfg.SampleRate = rate
		}
	}
	return cfg
}

// Setup initializes OpenTelemetry tracing and returns a shutdown function
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironmentName(config.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	if config.OTLPEndpoint != "" {
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(config.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	} else {
		// stdout carries the MCP protocol, so console spans go to stderr
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// StartToolSpan starts the span around one MCP tool call
func StartToolSpan(ctx context.Context, name, category string, readOnly bool) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "mcp.tool."+name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			AttrToolName.String(name),
			AttrToolCategory.String(category),
			AttrToolReadOnly.Bool(readOnly),
		))
}

// StartQuerySpan starts the span around one api.php request. page may be
// empty for requests that are not about a single article.
func StartQuerySpan(ctx context.Context, operation, endpoint, page string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		AttrOperation.String(operation),
		AttrEndpoint.String(endpoint),
	}
	if page != "" {
		attrs = append(attrs, AttrPageTitle.String(page))
	}
	return otel.Tracer(TracerName).Start(ctx, "wikipedia."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
}

// Finish sets the span status from err, recording it as an event when set.
// It does not end the span.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
