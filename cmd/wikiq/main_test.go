package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olgasafonova/wikipedia-mcp-server/wikipedia"
)

// fakeWiki answers the handful of queries the CLI tests issue
func fakeWiki(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var body any
		switch {
		case q.Get("list") == "search":
			body = map[string]any{"query": map[string]any{"search": []any{
				map[string]any{"title": "Go (programming language)"},
				map[string]any{"title": "Go (game)"},
			}}}
		case q.Get("prop") == "info|pageprops":
			if q.Get("titles") == "Nowhere" {
				body = map[string]any{"query": map[string]any{"pages": map[string]any{
					"-1": map[string]any{"ns": 0, "title": "Nowhere", "missing": ""},
				}}}
				break
			}
			body = map[string]any{"query": map[string]any{"pages": map[string]any{
				"25039021": map[string]any{"pageid": 25039021, "ns": 0, "title": q.Get("titles"),
					"fullurl": "https://en.wikipedia.org/wiki/Go"},
			}}}
		case q.Get("prop") == "extracts":
			body = map[string]any{"query": map[string]any{"pages": map[string]any{
				"25039021": map[string]any{"pageid": 25039021, "title": "Go", "extract": "Go is a language."},
			}}}
		case q.Get("prop") == "categories":
			resp := map[string]any{"query": map[string]any{"pages": map[string]any{
				"25039021": map[string]any{"pageid": 25039021, "title": "Go", "categories": []any{
					map[string]any{"title": "Category:Programming languages"},
				}},
			}}}
			if q.Get("clcontinue") == "" {
				resp["continue"] = map[string]any{"clcontinue": "25039021|Z", "continue": "||"}
			} else {
				resp["query"] = map[string]any{"pages": map[string]any{
					"25039021": map[string]any{"pageid": 25039021, "title": "Go", "categories": []any{
						map[string]any{"title": "Category:Statically typed languages"},
					}},
				}}
			}
			body = resp
		default:
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
			body = map[string]any{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--api-url", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	srv := fakeWiki(t)

	out, err := runCLI(t, srv, "search", "golang", "--limit", "2")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	want := "Go (programming language)\nGo (game)\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSearchCommand_JSON(t *testing.T) {
	srv := fakeWiki(t)

	out, err := runCLI(t, srv, "--json", "search", "golang")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	var res wikipedia.SearchResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Query != "golang" || res.Count != 2 || len(res.Titles) != 2 {
		t.Errorf("result = %+v, want 2 titles for golang", res)
	}
	if res.HasMore || res.Cursor != nil {
		t.Errorf("has_more = %v, cursor = %+v; want no continuation", res.HasMore, res.Cursor)
	}
}

func TestPageCommand(t *testing.T) {
	srv := fakeWiki(t)

	out, err := runCLI(t, srv, "page", "Go")
	if err != nil {
		t.Fatalf("page error = %v", err)
	}
	for _, want := range []string{"Title:     Go", "Page ID:   25039021", "https://en.wikipedia.org/wiki/Go"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPageCommand_NotFound(t *testing.T) {
	srv := fakeWiki(t)

	_, err := runCLI(t, srv, "summary", "Nowhere")
	if !wikipedia.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestSummaryCommand(t *testing.T) {
	srv := fakeWiki(t)

	out, err := runCLI(t, srv, "summary", "Go")
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}
	if strings.TrimSpace(out) != "Go is a language." {
		t.Errorf("output = %q", out)
	}
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCount int
		wantMore  bool
		wantFirst string
	}{
		{"first page", []string{"--json", "categories", "Go"}, 1, true, "Category:Programming languages"},
		{"all pages", []string{"--json", "categories", "Go", "--all"}, 2, false, "Category:Programming languages"},
		{"resume at cursor", []string{"--json", "categories", "Go", "--continue", "clcontinue=25039021|Z"}, 1, false, "Category:Statically typed languages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeWiki(t)
			out, err := runCLI(t, srv, tt.args...)
			if err != nil {
				t.Fatalf("categories error = %v", err)
			}
			var res wikipedia.TitlesResult
			if err := json.Unmarshal([]byte(out), &res); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out)
			}
			if res.Count != tt.wantCount || res.HasMore != tt.wantMore {
				t.Errorf("count = %d, has_more = %v; want %d, %v", res.Count, res.HasMore, tt.wantCount, tt.wantMore)
			}
			if len(res.Titles) == 0 || res.Titles[0] != tt.wantFirst {
				t.Errorf("titles = %v, want first %q", res.Titles, tt.wantFirst)
			}
			if tt.wantMore && (res.Cursor == nil || res.Cursor.Key != "clcontinue") {
				t.Errorf("cursor = %+v, want clcontinue", res.Cursor)
			}
		})
	}
}

func TestArgumentErrors(t *testing.T) {
	srv := fakeWiki(t)

	tests := []struct {
		name string
		args []string
	}{
		{"search without query", []string{"search"}},
		{"bad latitude", []string{"geosearch", "north", "10"}},
		{"latitude out of range", []string{"geosearch", "95", "10"}},
		{"invalid title", []string{"content", "A|B"}},
		{"bench without runs", []string{"bench", "go", "--runs", "0"}},
		{"continue without value", []string{"categories", "Go", "--continue", "clcontinue"}},
		{"continue without key", []string{"search", "go", "--continue", "=10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, srv, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	srv := fakeWiki(t)

	out, err := runCLI(t, srv, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("output = %q", out)
	}
}
