package search

import "strings"

// Similarity tiers. Evaluated in order; first match wins.
const (
	scoreExact    = 100.0
	scoreContains = 80.0
)

// Score rates a candidate text against one normalized query term on a
// [0, 100] scale: exact match after normalization scores 100, a substring
// containment scores 80, and when fuzzy is enabled anything else falls
// through to a normalized edit-distance score. A total function: empty
// candidate or term scores 0, never an error.
//
// The edit-distance tier is O(len(candidate) * len(term)); callers scoring
// very large candidate texts should truncate them first.
func Score(candidate, term string, fuzzy bool) float64 {
	cand := Normalize(candidate, false)
	if cand == "" || term == "" {
		return 0
	}
	if cand == term {
		return scoreExact
	}
	if strings.Contains(cand, term) {
		return scoreContains
	}
	if fuzzy {
		return fuzzyScore(cand, term)
	}
	return 0
}

// fuzzyScore maps edit distance to [0, 100]: identical strings score 100,
// strings differing in every position score 0.
func fuzzyScore(a, b string) float64 {
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 0
	}
	score := float64(maxLen-Levenshtein(a, b)) / float64(maxLen) * 100
	if score < 0 {
		return 0
	}
	return score
}
