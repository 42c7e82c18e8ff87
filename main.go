// Wikipedia MCP Server - A Model Context Protocol server for the Wikipedia query API
// Provides read-only tools for searching Wikipedia and reading article content
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikipedia-mcp-server/tools"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "wikipedia-mcp-server"
	ServerVersion = "1.0.0"
)

// recoverPanic logs a panic instead of crashing the process
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

func main() {
	httpAddr := flag.String("http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8080)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (e.g. :9090)")
	rateLimit := flag.Int("rate-limit", 60, "HTTP mode: requests per minute per client IP (0 disables)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	if err := run(logger, *httpAddr, *metricsAddr, *rateLimit); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, httpAddr, metricsAddr string, rateLimit int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	config, err := wikipedia.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := wikipedia.NewClient(config, wikipedia.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create Wikipedia client: %w", err)
	}

	server := newServer(client, logger)

	if metricsAddr != "" {
		go serveMetrics(logger, metricsAddr)
	}

	logger.Info("Starting Wikipedia MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"endpoint", client.Endpoint(),
		"transport", transportName(httpAddr),
	)

	if httpAddr != "" {
		return serveHTTP(ctx, logger, server, client, httpAddr, rateLimit)
	}
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newServer(client *wikipedia.Client, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Wikipedia MCP Server provides read-only access to Wikipedia.

Start with wikipedia_search when the exact article title is unknown, then use
wikipedia_get_summary for an overview or wikipedia_get_content for the full text.
List tools (links, backlinks, categories) return one page by default; pass all=true
to follow every continuation.

Configure via environment variables:
- WIKIPEDIA_LANG: Edition to query (en or fr, default en)
- WIKIPEDIA_API_URL: Explicit api.php URL, overrides WIKIPEDIA_LANG
- WIKIPEDIA_USER_AGENT: User-Agent sent to Wikipedia`,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)
	return server
}

func serveHTTP(ctx context.Context, logger *slog.Logger, server *mcp.Server, client *wikipedia.Client, addr string, rateLimit int) error {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	guard := NewSecurityMiddleware(mcpHandler, logger, SecurityConfig{
		RateLimit:   rateLimit,
		MaxBodySize: 1 << 20,
	})
	defer guard.Close()

	mux := http.NewServeMux()
	mux.Handle("/mcp", guard)
	mux.HandleFunc("/health", healthHandler(client))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer recoverPanic(logger, "http server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// healthHandler reports liveness and the state of the upstream circuit breaker
func healthHandler(client *wikipedia.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := client.CircuitBreakerStats()
		status := http.StatusOK
		if stats.State == "open" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":          http.StatusText(status),
			"version":         ServerVersion,
			"endpoint":        client.Endpoint(),
			"circuit_breaker": stats,
		})
	}
}

func serveMetrics(logger *slog.Logger, addr string) {
	defer recoverPanic(logger, "metrics server")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Metrics server failed", "error", err)
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func transportName(httpAddr string) string {
	if httpAddr != "" {
		return "http"
	}
	return "stdio"
}
