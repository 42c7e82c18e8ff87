package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans installs a recording tracer provider for the test
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]string {
	m := make(map[attribute.Key]string, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value.Emit()
	}
	return m
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OTEL_ENVIRONMENT", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	cfg := DefaultConfig()

	if cfg.ServiceName != "wikipedia-mcp-server" {
		t.Errorf("Expected ServiceName 'wikipedia-mcp-server', got %q", cfg.ServiceName)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected Environment 'development', got %q", cfg.Environment)
	}
	if cfg.Enabled {
		t.Error("Expected Enabled to be false by default")
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("Expected OTLPEndpoint to be empty, got %q", cfg.OTLPEndpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("Expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultConfig_WithEnvVars(t *testing.T) {
	t.Setenv("OTEL_ENVIRONMENT", "production")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	cfg := DefaultConfig()

	if cfg.Environment != "production" {
		t.Errorf("Expected Environment 'production', got %q", cfg.Environment)
	}
	if !cfg.Enabled {
		t.Error("Expected Enabled to be true")
	}
	if cfg.OTLPEndpoint != "localhost:4318" {
		t.Errorf("Expected OTLPEndpoint 'localhost:4318', got %q", cfg.OTLPEndpoint)
	}
}

func TestDefaultConfig_SampleRate(t *testing.T) {
	tests := []struct {
		arg  string
		want float64
	}{
		{"", 1.0},
		{"0.25", 0.25},
		{"0", 0},
		{"often", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLER_ARG", tt.arg)
			if got := DefaultConfig().SampleRate; got != tt.want {
				t.Errorf("SampleRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultConfig_EnabledByEndpoint(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	if !DefaultConfig().Enabled {
		t.Error("Expected Enabled to be true when OTLP endpoint is set")
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown returned error: %v", err)
	}
}

func TestSetup_EnabledWithStdout(t *testing.T) {
	cfg := Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Enabled:        true,
		SampleRate:     1.0,
	}

	shutdown, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	_, span := StartQuerySpan(context.Background(), "search", "https://en.wikipedia.org/w/api.php", "")
	defer span.End()
	if !span.SpanContext().IsValid() {
		t.Error("Expected a recording span after Setup")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want string
	}{
		{"always sample", 1.0, "AlwaysOnSampler"},
		{"above 1.0", 1.5, "AlwaysOnSampler"},
		{"never sample", 0.0, "AlwaysOffSampler"},
		{"below 0.0", -0.5, "AlwaysOffSampler"},
		{"ratio sample", 0.5, "TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampler(tt.rate).Description(); got != tt.want {
				t.Errorf("sampler(%v) = %q, want %q", tt.rate, got, tt.want)
			}
		})
	}
}

func TestStartToolSpan(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartToolSpan(context.Background(), "wikipedia_search", "search", true)
	Finish(span, nil)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := spans[0]
	if got.Name() != "mcp.tool.wikipedia_search" || got.SpanKind() != trace.SpanKindServer {
		t.Errorf("span = %s (%v), want mcp.tool.wikipedia_search server span", got.Name(), got.SpanKind())
	}
	attrs := attrMap(got.Attributes())
	want := map[attribute.Key]string{
		AttrToolName:     "wikipedia_search",
		AttrToolCategory: "search",
		AttrToolReadOnly: "true",
	}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attribute %s = %q, want %q", k, attrs[k], v)
		}
	}
	if got.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", got.Status().Code)
	}
}

func TestStartQuerySpan(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartQuerySpan(context.Background(), "backlinks", "https://en.wikipedia.org/w/api.php", "Batman")
	span.End()
	_, span = StartQuerySpan(context.Background(), "random", "https://en.wikipedia.org/w/api.php", "")
	span.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	first := attrMap(spans[0].Attributes())
	if first[AttrOperation] != "backlinks" || first[AttrPageTitle] != "Batman" || first[AttrEndpoint] == "" {
		t.Errorf("backlinks attributes = %v", first)
	}
	if spans[0].Name() != "wikipedia.backlinks" || spans[0].SpanKind() != trace.SpanKindClient {
		t.Errorf("span = %s (%v)", spans[0].Name(), spans[0].SpanKind())
	}
	if _, ok := attrMap(spans[1].Attributes())[AttrPageTitle]; ok {
		t.Error("wiki.page.title should not be set for an empty page")
	}
}

func TestFinish_Error(t *testing.T) {
	recorder := recordSpans(t)

	_, span := StartQuerySpan(context.Background(), "search", "https://en.wikipedia.org/w/api.php", "")
	Finish(span, errors.New("boom"))
	span.End()

	got := recorder.Ended()[0]
	if got.Status().Code != codes.Error || got.Status().Description != "boom" {
		t.Errorf("status = %+v, want Error boom", got.Status())
	}
	if len(got.Events()) != 1 {
		t.Errorf("expected 1 error event, got %d", len(got.Events()))
	}
}

func TestTracerName(t *testing.T) {
	if TracerName != "wikipedia-mcp-server" {
		t.Errorf("Expected TracerName 'wikipedia-mcp-server', got %q", TracerName)
	}
}
