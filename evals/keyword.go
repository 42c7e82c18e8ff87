package evals

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	quotedRe = regexp.MustCompile(`"([^"]+)"`)
	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// KeywordRule selects Tool when the request contains any of Keywords
type KeywordRule struct {
	Tool     string
	Keywords []string
}

// KeywordSelector is a deterministic baseline: the first matching rule wins.
// Quoted text becomes the title (or the query, for search) and is ignored
// when matching keywords.
type KeywordSelector struct {
	Rules []KeywordRule
}

// NewKeywordSelector returns the baseline rules for the Wikipedia tools.
// Order matters: narrower phrases come before the words they contain.
func NewKeywordSelector() *KeywordSelector {
	return &KeywordSelector{Rules: []KeywordRule{
		{"wikipedia_geosearch", []string{"near", "nearby", "close to"}},
		{"wikipedia_random", []string{"random"}},
		{"wikipedia_get_references", []string{"external link", "reference", "sources", "citation"}},
		{"wikipedia_get_backlinks", []string{"backlink", "link to", "links to", "linking to"}},
		{"wikipedia_get_links", []string{"outgoing links", "links of", "links from", "linked from"}},
		{"wikipedia_get_categories", []string{"categor"}},
		{"wikipedia_get_coordinates", []string{"coordinates", "latitude", "longitude"}},
		{"wikipedia_get_infobox", []string{"infobox", "key facts"}},
		{"wikipedia_get_images", []string{"image", "picture", "photo"}},
		{"wikipedia_get_html", []string{"html", "rendered"}},
		{"wikipedia_get_summary", []string{"summar", "overview", "introduction", "brief"}},
		{"wikipedia_get_content", []string{"full text", "entire article", "whole article", "plain text"}},
		{"wikipedia_get_page", []string{"exist", "disambiguation", "page id", "url of"}},
		{"wikipedia_search", []string{"search", "find articles", "look up"}},
	}}
}

// SelectTool implements ToolSelector. Unmatched requests fall back to search.
func (k *KeywordSelector) SelectTool(input string) (string, map[string]any, error) {
	quoted := ""
	if m := quotedRe.FindStringSubmatch(input); m != nil {
		quoted = m[1]
	}
	text := strings.ToLower(quotedRe.ReplaceAllString(input, ""))

	tool := "wikipedia_search"
	for _, rule := range k.Rules {
		if containsAny(text, rule.Keywords) {
			tool = rule.Tool
			break
		}
	}

	args := make(map[string]any)
	switch tool {
	case "wikipedia_search":
		if quoted != "" {
			args["query"] = quoted
		}
	case "wikipedia_geosearch":
		nums := numbers(text)
		if len(nums) >= 2 {
			args["lat"], args["lon"] = nums[0], nums[1]
		}
	case "wikipedia_random":
		if nums := numbers(text); len(nums) > 0 {
			args["limit"] = nums[0]
		}
	default:
		if quoted != "" {
			args["title"] = quoted
		}
	}
	return tool, args, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func numbers(s string) []float64 {
	var out []float64
	for _, m := range numberRe.FindAllString(s, -1) {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, f)
		}
	}
	return out
}
