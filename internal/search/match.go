package search

import "sort"

// Result caps. AdvancedSearch callers that pass maxResults <= 0 get the
// unbounded list; the orchestrator caps each per-collection search at
// DefaultLimit and its merged cross-collection list at GlobalLimit.
const (
	DefaultLimit = 50
	GlobalLimit  = 20
)

// ScoredItem pairs a source record with its non-negative relevance score.
// Higher scores rank earlier; items scoring <= 0 are never emitted.
type ScoredItem[T any] struct {
	Item  T
	Score float64
}

// AdvancedSearch scores every item against all query terms across the given
// fields and returns matching items sorted by score descending, stable with
// respect to input order for ties. maxResults <= 0 means unbounded.
//
// For each item, every non-zero field/term similarity contributes to
// totalScore and matchCount. The final score is
//
//	(totalScore / matchCount) * (matchCount / termCount)
//
// i.e. average match quality weighted by query-term coverage. The two-factor
// form algebraically reduces to totalScore/termCount; keep the factors
// separate, quality and coverage are independent knobs. Do not simplify.
//
// A record matching the same term through several fields is counted once per
// field; the multi-field reward is intentional.
func AdvancedSearch[T any](items []T, query string, fields []FieldSpec[T], fuzzy bool, maxResults int) []ScoredItem[T] {
	terms := ParseQuery(query)
	if len(terms) == 0 {
		return nil
	}

	termCount := float64(len(terms))
	results := make([]ScoredItem[T], 0, len(items))
	for _, item := range items {
		var totalScore float64
		var matchCount int
		for _, field := range fields {
			value := field.Value(item)
			if value == "" {
				continue
			}
			for _, term := range terms {
				if s := Score(value, term, fuzzy); s > 0 {
					totalScore += s
					matchCount++
				}
			}
		}
		if matchCount == 0 {
			continue
		}
		score := (totalScore / float64(matchCount)) * (float64(matchCount) / termCount)
		if score <= 0 {
			continue
		}
		results = append(results, ScoredItem[T]{Item: item, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
