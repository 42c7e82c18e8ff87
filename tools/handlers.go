package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
	"go.opentelemetry.io/otel/attribute"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *wikipedia.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *wikipedia.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	registered := 0
	for _, spec := range AllTools {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools", "count", registered)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)
	c := h.client

	switch spec.Method {
	// Search tools
	case "Search":
		register(h, server, tool, spec, c.SearchMCP)
	case "Random":
		register(h, server, tool, spec, c.RandomMCP)
	case "GeoSearch":
		register(h, server, tool, spec, c.GeoSearchMCP)

	// Page tools
	case "GetPage":
		register(h, server, tool, spec, c.GetPageMCP)
	case "GetCoordinates":
		register(h, server, tool, spec, c.GetCoordinatesMCP)
	case "GetInfobox":
		register(h, server, tool, spec, c.GetInfoboxMCP)

	// Content tools
	case "GetSummary":
		register(h, server, tool, spec, c.GetSummaryMCP)
	case "GetContent":
		register(h, server, tool, spec, c.GetContentMCP)
	case "GetHTML":
		register(h, server, tool, spec, c.GetHTMLMCP)
	case "GetImages":
		register(h, server, tool, spec, c.GetImagesMCP)
	case "GetReferences":
		register(h, server, tool, spec, c.GetReferencesMCP)

	// List tools
	case "GetLinks":
		register(h, server, tool, spec, c.GetLinksMCP)
	case "GetBacklinks":
		register(h, server, tool, spec, c.GetBacklinksMCP)
	case "GetCategories":
		register(h, server, tool, spec, c.GetCategoriesMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, out Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		ctx, span := tracing.StartToolSpan(ctx, spec.Name, spec.Category, spec.ReadOnly)
		defer span.End()

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))
		tracing.Finish(span, err)

		if err != nil {
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers and turns them into
// a tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch a := args.(type) {
	case wikipedia.SearchArgs:
		attrs = append(attrs, "query", a.Query, "all", a.All)
	case wikipedia.RandomArgs:
		attrs = append(attrs, "limit", a.Limit)
	case wikipedia.GeoSearchArgs:
		attrs = append(attrs, "lat", a.Lat, "lon", a.Lon, "radius", a.Radius)
	case wikipedia.GetPageArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetContentArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetSummaryArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetHTMLArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetImagesArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetReferencesArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetLinksArgs:
		attrs = append(attrs, "title", a.Title, "all", a.All)
	case wikipedia.GetCategoriesArgs:
		attrs = append(attrs, "title", a.Title, "all", a.All)
	case wikipedia.GetBacklinksArgs:
		attrs = append(attrs, "title", a.Title, "all", a.All)
	case wikipedia.GetCoordinatesArgs:
		attrs = append(attrs, "title", a.Title)
	case wikipedia.GetInfoboxArgs:
		attrs = append(attrs, "title", a.Title)
	}

	switch r := result.(type) {
	case wikipedia.SearchResult:
		attrs = append(attrs, "results_count", r.Count, "has_more", r.HasMore)
	case wikipedia.TitlesResult:
		attrs = append(attrs, "results_count", r.Count, "has_more", r.HasMore)
	case wikipedia.URLsResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.TextResult:
		attrs = append(attrs, "length", r.Length)
	case wikipedia.GetPageResult:
		attrs = append(attrs, "found", r.Found)
	case wikipedia.GetCoordinatesResult:
		attrs = append(attrs, "found", r.Found)
	case wikipedia.GetInfoboxResult:
		attrs = append(attrs, "fields", r.Count)
	}

	h.logger.Info("Tool executed", attrs...)
}
