// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are defined declaratively in AllTools and registered through
// type-safe handlers bound to the Wikipedia client.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a wikipedia.Client MCP method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "wikipedia_search")
	Name string

	// Method is the client method name (e.g., "Search")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (search, page, content, lists)
	Category string

	// ReadOnly indicates the tool doesn't modify wiki state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ToolsByCategory returns the specs in the given category
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// FindTool looks up a spec by tool name
func FindTool(name string) (ToolSpec, bool) {
	for _, spec := range AllTools {
		if spec.Name == name {
			return spec, true
		}
	}
	return ToolSpec{}, false
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
