package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestClient returns a client talking to a stub api.php
func newTestClient(t *testing.T, handler http.HandlerFunc) *wikipedia.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := wikipedia.NewClient(&wikipedia.Config{BaseURL: srv.URL},
		wikipedia.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

// connect registers every tool on a fresh server and returns a connected
// in-memory client session.
func connect(t *testing.T, client *wikipedia.Client) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "wikipedia-test", Version: "test"}, nil)
	NewHandlerRegistry(client, testLogger()).RegisterAll(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestNewHandlerRegistry(t *testing.T) {
	logger := testLogger()
	client, err := wikipedia.NewClient(nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	registry := NewHandlerRegistry(client, logger)

	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.client != client {
		t.Error("Registry should hold the client reference")
	}
	if registry.logger != logger {
		t.Error("Registry should hold the logger reference")
	}
}

func TestBuildTool(t *testing.T) {
	client, err := wikipedia.NewClient(nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	registry := NewHandlerRegistry(client, testLogger())

	tests := []struct {
		name      string
		spec      ToolSpec
		wantRO    bool
		wantIdem  bool
		wantDestr bool
		wantOpen  bool
	}{
		{
			name: "read-only tool",
			spec: ToolSpec{
				Name:        "wikipedia_search",
				Title:       "Search Wikipedia",
				Description: "Full-text search",
				Method:      "Search",
				ReadOnly:    true,
				Idempotent:  true,
			},
			wantRO:   true,
			wantIdem: true,
		},
		{
			name: "open world tool",
			spec: ToolSpec{
				Name:        "wikipedia_random",
				Title:       "Random Articles",
				Description: "Random pick",
				Method:      "Random",
				OpenWorld:   true,
			},
			wantOpen: true,
		},
		{
			name: "destructive tool",
			spec: ToolSpec{
				Name:        "hypothetical_delete",
				Description: "Deletes things",
				Destructive: true,
			},
			wantDestr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := registry.buildTool(tt.spec)

			if tool.Name != tt.spec.Name {
				t.Errorf("Name = %q, want %q", tool.Name, tt.spec.Name)
			}
			if tool.Description != tt.spec.Description {
				t.Errorf("Description = %q, want %q", tool.Description, tt.spec.Description)
			}
			if tool.Annotations == nil {
				t.Fatal("Expected annotations")
			}
			if tool.Annotations.Title != tt.spec.Title {
				t.Errorf("Title = %q, want %q", tool.Annotations.Title, tt.spec.Title)
			}
			if tool.Annotations.ReadOnlyHint != tt.wantRO {
				t.Errorf("ReadOnlyHint = %v, want %v", tool.Annotations.ReadOnlyHint, tt.wantRO)
			}
			if tool.Annotations.IdempotentHint != tt.wantIdem {
				t.Errorf("IdempotentHint = %v, want %v", tool.Annotations.IdempotentHint, tt.wantIdem)
			}
			if tt.wantDestr != (tool.Annotations.DestructiveHint != nil && *tool.Annotations.DestructiveHint) {
				t.Errorf("DestructiveHint = %v, want %v", tool.Annotations.DestructiveHint, tt.wantDestr)
			}
			if tt.wantOpen != (tool.Annotations.OpenWorldHint != nil && *tool.Annotations.OpenWorldHint) {
				t.Errorf("OpenWorldHint = %v, want %v", tool.Annotations.OpenWorldHint, tt.wantOpen)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	client, _ := wikipedia.NewClient(nil)
	registry := NewHandlerRegistry(client, testLogger())

	var err error
	func() {
		defer registry.recoverPanic("test_tool", &err)
		panic("test panic")
	}()

	if err == nil || !strings.Contains(err.Error(), "test_tool failed") {
		t.Errorf("expected tool error after panic, got %v", err)
	}
}

func TestLogExecution(t *testing.T) {
	client, _ := wikipedia.NewClient(nil)
	registry := NewHandlerRegistry(client, testLogger())
	spec := ToolSpec{Name: "test_tool", Category: "search"}

	registry.logExecution(spec,
		wikipedia.SearchArgs{Query: "test"},
		wikipedia.SearchResult{Titles: []string{"Test"}, Count: 1})

	registry.logExecution(spec,
		wikipedia.GetPageArgs{Title: "Batman"},
		wikipedia.GetPageResult{Found: false})

	registry.logExecution(spec,
		wikipedia.GetLinksArgs{Title: "Batman", All: true},
		wikipedia.TitlesResult{Titles: []string{"Robin"}, Count: 1})
}

func TestAllToolsNotEmpty(t *testing.T) {
	if len(AllTools) == 0 {
		t.Error("AllTools should not be empty")
	}

	seen := map[string]bool{}
	for i, spec := range AllTools {
		if spec.Name == "" {
			t.Errorf("Tool %d has empty Name", i)
		}
		if seen[spec.Name] {
			t.Errorf("Tool %s defined twice", spec.Name)
		}
		seen[spec.Name] = true
		if !strings.HasPrefix(spec.Name, "wikipedia_") {
			t.Errorf("Tool %s should use the wikipedia_ prefix", spec.Name)
		}
		if spec.Method == "" {
			t.Errorf("Tool %s has empty Method", spec.Name)
		}
		if spec.Description == "" {
			t.Errorf("Tool %s has empty Description", spec.Name)
		}
		if spec.Category == "" {
			t.Errorf("Tool %s has empty Category", spec.Name)
		}
		if !spec.ReadOnly || spec.Destructive {
			t.Errorf("Tool %s should be read-only", spec.Name)
		}
	}
}

func TestToolsByCategory(t *testing.T) {
	for _, category := range []string{"search", "page", "content", "lists"} {
		tools := ToolsByCategory(category)
		if len(tools) == 0 {
			t.Errorf("Expected %s tools", category)
		}
		for _, tool := range tools {
			if tool.Category != category {
				t.Errorf("Tool %s has category %s, expected %s", tool.Name, tool.Category, category)
			}
		}
	}

	if got := ToolsByCategory("unknown"); len(got) != 0 {
		t.Errorf("Expected 0 tools for unknown category, got %d", len(got))
	}
}

func TestFindTool(t *testing.T) {
	spec, ok := FindTool("wikipedia_get_summary")
	if !ok || spec.Method != "GetSummary" {
		t.Errorf("FindTool() = %+v, %v", spec, ok)
	}
	if _, ok := FindTool("mediawiki_search"); ok {
		t.Error("unexpected tool found")
	}
}

func TestRegisterAll_ListsEveryTool(t *testing.T) {
	client, _ := wikipedia.NewClient(nil)
	session := connect(t, client)

	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(res.Tools) != len(AllTools) {
		t.Errorf("listed %d tools, want %d", len(res.Tools), len(AllTools))
	}
	for _, tool := range res.Tools {
		if _, ok := FindTool(tool.Name); !ok {
			t.Errorf("unexpected tool %s", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
}

func TestCallTool_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("srsearch"); got != "star wars" {
			t.Errorf("srsearch = %q", got)
		}
		writeJSON(t, w, map[string]any{"query": map[string]any{"search": []any{
			map[string]any{"title": "Star Wars"},
			map[string]any{"title": "Star Wars (film)"},
		}}})
	})
	session := connect(t, client)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "wikipedia_search",
		Arguments: map[string]any{"query": "star wars", "limit": 2},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}

	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out wikipedia.SearchResult
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	if out.Count != 2 || out.Titles[0] != "Star Wars" {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestCallTool_ErrorIsReported(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"error": map[string]any{"code": "maxlag", "info": "Waiting for a database server"}})
	})
	session := connect(t, client)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "wikipedia_get_summary",
		Arguments: map[string]any{"title": "Batman"},
	})
	if err != nil {
		// Protocol-level errors are acceptable as long as the cause is surfaced
		if !strings.Contains(err.Error(), "wikipedia_get_summary failed") {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}
	if !res.IsError {
		t.Fatal("expected IsError result")
	}
	var text string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}
	if !strings.Contains(text, "wikipedia_get_summary failed") || !strings.Contains(text, "maxlag") {
		t.Errorf("error text = %q", text)
	}
}

func TestRegisterByName_Unknown(t *testing.T) {
	client, _ := wikipedia.NewClient(nil)
	registry := NewHandlerRegistry(client, testLogger())
	server := mcp.NewServer(&mcp.Implementation{Name: "x", Version: "x"}, nil)

	if registry.registerByName(server, ToolSpec{Name: "wikipedia_nothing", Method: "Nothing"}) {
		t.Error("unknown method should not register")
	}
	if !registry.registerByName(server, AllTools[0]) {
		t.Error("known method should register")
	}
}
