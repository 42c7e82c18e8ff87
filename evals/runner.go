// Package evals measures how well a tool selector maps natural language
// requests onto the Wikipedia MCP tools and their arguments.
package evals

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/olgasafonova/wikipedia-mcp-server/tools"
)

//go:embed tool_selection.json
var defaultSuite []byte

// ToolSelectionTest is a single tool selection case
type ToolSelectionTest struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Input        string         `json:"input"`
	ExpectedTool string         `json:"expected_tool"`
	ExpectedArgs map[string]any `json:"expected_args"`
	NotTools     []string       `json:"not_tools"`
}

// ToolSelectionSuite is a named set of tool selection cases
type ToolSelectionSuite struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Tests       []ToolSelectionTest `json:"tests"`
}

// ToolSelectionResult is the outcome of one case
type ToolSelectionResult struct {
	TestID       string
	Input        string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// EvalMetrics aggregates the results of a run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64
	ByCategory    map[string]*CategoryMetrics
	FailedDetails []string
}

// CategoryMetrics counts results per tool category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// ToolSelector is implemented by an LLM harness or a baseline
type ToolSelector interface {
	SelectTool(input string) (toolName string, args map[string]any, err error)
}

// DefaultSuite returns the built-in Wikipedia suite
func DefaultSuite() (*ToolSelectionSuite, error) {
	return ParseToolSelectionSuite(defaultSuite)
}

// LoadToolSelectionSuite reads a suite from a JSON file
func LoadToolSelectionSuite(path string) (*ToolSelectionSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return ParseToolSelectionSuite(data)
}

// ParseToolSelectionSuite decodes a suite and checks it against the
// registered tools.
func ParseToolSelectionSuite(data []byte) (*ToolSelectionSuite, error) {
	var suite ToolSelectionSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	return &suite, nil
}

// Validate reports duplicate IDs and references to unknown tools
func (s *ToolSelectionSuite) Validate() error {
	seen := make(map[string]bool, len(s.Tests))
	for _, test := range s.Tests {
		if test.ID == "" || test.Input == "" {
			return fmt.Errorf("test %q: id and input are required", test.ID)
		}
		if seen[test.ID] {
			return fmt.Errorf("duplicate test id %s", test.ID)
		}
		seen[test.ID] = true

		if _, ok := tools.FindTool(test.ExpectedTool); !ok {
			return fmt.Errorf("test %s: unknown expected tool %s", test.ID, test.ExpectedTool)
		}
		for _, name := range test.NotTools {
			if _, ok := tools.FindTool(name); !ok {
				return fmt.Errorf("test %s: unknown excluded tool %s", test.ID, name)
			}
			if name == test.ExpectedTool {
				return fmt.Errorf("test %s: %s is both expected and excluded", test.ID, name)
			}
		}
	}
	return nil
}

// Coverage returns the registered tools no test expects, sorted by name
func (s *ToolSelectionSuite) Coverage() (untested []string) {
	expected := make(map[string]bool)
	for _, test := range s.Tests {
		expected[test.ExpectedTool] = true
	}
	for _, spec := range tools.AllTools {
		if !expected[spec.Name] {
			untested = append(untested, spec.Name)
		}
	}
	sort.Strings(untested)
	return untested
}

// EvaluateToolSelection runs every case of suite through selector
func EvaluateToolSelection(suite *ToolSelectionSuite, selector ToolSelector) (*EvalMetrics, []ToolSelectionResult) {
	metrics := &EvalMetrics{ByCategory: make(map[string]*CategoryMetrics)}
	results := make([]ToolSelectionResult, 0, len(suite.Tests))

	for _, test := range suite.Tests {
		metrics.TotalTests++
		cat := metrics.ByCategory[test.Category]
		if cat == nil {
			cat = &CategoryMetrics{}
			metrics.ByCategory[test.Category] = cat
		}
		cat.Total++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)
		result := ToolSelectionResult{
			TestID:       test.ID,
			Input:        test.Input,
			ExpectedTool: test.ExpectedTool,
			ActualTool:   actualTool,
		}

		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("selector error: %v", err))
		}
		if actualTool != test.ExpectedTool {
			result.Errors = append(result.Errors,
				fmt.Sprintf("wrong tool: expected %s, got %s", test.ExpectedTool, actualTool))
		}
		for _, excluded := range test.NotTools {
			if actualTool == excluded {
				result.Errors = append(result.Errors, fmt.Sprintf("selected excluded tool: %s", excluded))
			}
		}
		for _, key := range sortedKeys(test.ExpectedArgs) {
			want := test.ExpectedArgs[key]
			got, ok := actualArgs[key]
			switch {
			case !ok:
				result.Errors = append(result.Errors, fmt.Sprintf("missing arg %s (expected %v)", key, want))
			case !compareValues(want, got):
				result.Errors = append(result.Errors, fmt.Sprintf("wrong arg %s: expected %v, got %v", key, want, got))
			}
		}

		result.Passed = len(result.Errors) == 0
		if result.Passed {
			metrics.PassedTests++
			cat.Passed++
		} else {
			metrics.FailedTests++
			cat.Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(result.Errors, "; ")))
		}
		results = append(results, result)
	}

	if metrics.TotalTests > 0 {
		metrics.Accuracy = float64(metrics.PassedTests) / float64(metrics.TotalTests)
	}
	return metrics, results
}

// compareValues treats every JSON number as float64
func compareValues(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	ef, eNum := toFloat(expected)
	af, aNum := toFloat(actual)
	if eNum && aNum {
		return ef == af
	}
	return reflect.DeepEqual(expected, actual)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatMetrics renders a human-readable summary
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d tests\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		cats := make([]string, 0, len(metrics.ByCategory))
		for cat := range metrics.ByCategory {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			m := metrics.ByCategory[cat]
			fmt.Fprintf(&b, "  %-10s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, float64(m.Passed)/float64(m.Total)*100)
		}
	}

	details := metrics.FailedDetails
	if len(details) > 10 {
		fmt.Fprintf(&b, "\nFailed Tests (showing first 10 of %d):\n", len(details))
		details = details[:10]
	} else if len(details) > 0 {
		b.WriteString("\nFailed Tests:\n")
	}
	for _, d := range details {
		fmt.Fprintf(&b, "  - %s\n", d)
	}

	return b.String()
}
