// Command evals reports on the tool selection suite and scores the keyword
// baseline against it.
//
// Usage:
//
//	go run ./cmd/evals -suite evals/tool_selection.json -verbose
//
// To score an LLM, implement evals.ToolSelector and call
// evals.EvaluateToolSelection with it.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/olgasafonova/wikipedia-mcp-server/evals"
)

func main() {
	path := flag.String("suite", "", "tool selection suite JSON (default: built-in suite)")
	verbose := flag.Bool("verbose", false, "list every test case")
	flag.Parse()

	suite, err := loadSuite(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Wikipedia MCP Server - Tool Selection Evals")
	fmt.Println("===========================================")
	fmt.Printf("Suite: %s (version %s)\n", suite.Name, suite.Version)
	fmt.Printf("Total Tests: %d\n\n", len(suite.Tests))

	byTool := make(map[string]int)
	for _, test := range suite.Tests {
		byTool[test.ExpectedTool]++
	}
	names := make([]string, 0, len(byTool))
	for name := range byTool {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Tests by Tool:")
	for _, name := range names {
		fmt.Printf("  %-28s: %d\n", name, byTool[name])
	}
	if untested := suite.Coverage(); len(untested) > 0 {
		fmt.Printf("\nTools without tests: %v\n", untested)
	}

	if *verbose {
		fmt.Println("\nTest Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    -> %s %v\n", test.ExpectedTool, test.ExpectedArgs)
			if len(test.NotTools) > 0 {
				fmt.Printf("    not %v\n", test.NotTools)
			}
		}
	}

	metrics, _ := evals.EvaluateToolSelection(suite, evals.NewKeywordSelector())
	fmt.Print(evals.FormatMetrics(metrics, "Keyword baseline"))
}

func loadSuite(path string) (*evals.ToolSelectionSuite, error) {
	if path == "" {
		return evals.DefaultSuite()
	}
	return evals.LoadToolSelectionSuite(path)
}
