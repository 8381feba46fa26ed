// Package search implements the multi-entity search engine: text
// normalization, tiered similarity scoring, inverted-index retrieval,
// ranked field matching, and cross-collection result fusion.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes text for comparison: trims surrounding whitespace,
// strips combining diacritical marks, and folds case unless caseSensitive.
// Pure and idempotent; empty input yields empty output.
func Normalize(text string, caseSensitive bool) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	return text
}

// ParseQuery splits a raw query on runs of whitespace and normalizes each
// fragment case-insensitively. An empty or whitespace-only query yields an
// empty slice, which downstream code treats as "no query", never as
// "match everything".
func ParseQuery(query string) []string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := Normalize(f, false); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
