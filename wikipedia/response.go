package wikipedia

import (
	"strconv"
)

// Params are the operation-specific query parameters of one request.
// format=json and action=query are added by the client.
type Params map[string]string

// Clone returns an independent copy of p
func (p Params) Clone() Params {
	out := make(Params, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Response is a parsed query API response. Its shape depends on the query;
// each operation reads the sub-path it asked for.
type Response map[string]any

// Query returns the "query" object, or nil when absent
func (r Response) Query() map[string]any {
	return getMap(r["query"])
}

// Pages returns query.pages keyed by page id, or nil when absent
func (r Response) Pages() map[string]any {
	return getMap(r.Query()["pages"])
}

func getMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func getSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func getString(v any) string {
	s, _ := v.(string)
	return s
}

func getInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

func getFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// formatScalar renders a JSON scalar as a query-string value
func formatScalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
