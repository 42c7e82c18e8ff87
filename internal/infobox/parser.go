// Package infobox extracts the fields of an {{Infobox ...}} template from
// wikitext.
package infobox

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnterminated is returned when an infobox template has no closing braces
var ErrUnterminated = errors.New("unterminated infobox template")

var (
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	openRe    = regexp.MustCompile(`(?i)\{\{\s*infobox`)
)

// Parser parses the first infobox template of a wikitext document
type Parser struct{}

// New creates a Parser
func New() *Parser {
	return &Parser{}
}

// Parse returns the named parameters of the first infobox in wikitext.
// Nested templates and links are kept verbatim in values. Positional
// parameters are ignored. A document without an infobox yields an empty map.
func (p *Parser) Parse(wikitext string) (map[string]string, error) {
	fields := map[string]string{}

	text := commentRe.ReplaceAllString(wikitext, "")
	loc := openRe.FindStringIndex(text)
	if loc == nil {
		return fields, nil
	}

	body, ok := templateBody(text[loc[0]+2:])
	if !ok {
		return nil, ErrUnterminated
	}

	parts := splitTopLevel(body)
	// parts[0] is the template name
	for _, part := range parts[1:] {
		eq := topLevelIndex(part, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(part[:eq])
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(part[eq+1:])
	}
	return fields, nil
}

// templateBody returns the text up to the "}}" that closes the template
// whose opening "{{" was just consumed.
func templateBody(s string) (string, bool) {
	braces, brackets := 1, 0
	for i := 0; i < len(s)-1; i++ {
		switch {
		case s[i] == '{' && s[i+1] == '{':
			braces++
			i++
		case s[i] == '}' && s[i+1] == '}':
			braces--
			if braces == 0 {
				return s[:i], true
			}
			i++
		case s[i] == '[' && s[i+1] == '[':
			brackets++
			i++
		case s[i] == ']' && s[i+1] == ']':
			if brackets > 0 {
				brackets--
			}
			i++
		}
	}
	return "", false
}

// splitTopLevel splits a template body on '|' outside nested {{ }} and [[ ]]
func splitTopLevel(body string) []string {
	var parts []string
	last := 0
	walkTopLevel(body, func(i int, c byte) {
		if c == '|' {
			parts = append(parts, body[last:i])
			last = i + 1
		}
	})
	return append(parts, body[last:])
}

// topLevelIndex returns the index of the first top-level c in s, or -1
func topLevelIndex(s string, c byte) int {
	idx := -1
	walkTopLevel(s, func(i int, b byte) {
		if idx < 0 && b == c {
			idx = i
		}
	})
	return idx
}

func walkTopLevel(s string, visit func(i int, c byte)) {
	braces, brackets := 0, 0
	for i := 0; i < len(s); i++ {
		if i+1 < len(s) {
			pair := s[i : i+2]
			switch pair {
			case "{{":
				braces++
				i++
				continue
			case "}}":
				if braces > 0 {
					braces--
				}
				i++
				continue
			case "[[":
				brackets++
				i++
				continue
			case "]]":
				if brackets > 0 {
					brackets--
				}
				i++
				continue
			}
		}
		if braces == 0 && brackets == 0 {
			visit(i, s[i])
		}
	}
}
