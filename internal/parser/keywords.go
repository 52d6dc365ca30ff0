package parser

import (
	"strings"
)

// Service defines the interface for keyword input parsing
// External packages should use this interface, not the concrete implementations
type Service interface {
	ParseKeywords(raw string) []string
	Normalize(keywords []string) []string
}

// Parser implements the Service interface
type Parser struct{}

// NewParser creates a new keyword parser
func NewParser() Service {
	return newParser()
}

// newParser creates the concrete implementation
func newParser() *Parser {
	return &Parser{}
}

// ParseKeywords splits raw user input on newlines and commas into a cleaned
// keyword list. Blank entries are dropped, duplicates keep their first
// occurrence, order is preserved.
func (p *Parser) ParseKeywords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	return p.Normalize(fields)
}

// Normalize trims each keyword and discards blanks and duplicates before
// request construction
func (p *Parser) Normalize(keywords []string) []string {
	var cleaned []string
	seen := make(map[string]struct{}, len(keywords))

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		cleaned = append(cleaned, kw)
	}

	return cleaned
}
