package search

// FieldSpec names one searchable field of a record type and how to read it.
// An empty value from Value means the field is absent for that record and is
// skipped. An ordered list of FieldSpecs defines the searchable surface of a
// record type.
type FieldSpec[T any] struct {
	Name  string
	Value func(T) string
}

// InvertedIndex maps normalized terms to posting lists. Posting lists keep
// insertion order, and a record matching a term through two fields appears
// twice; callers deduplicate if they need set semantics. An index is built
// once per collection snapshot and is read-only afterwards: rebuild, never
// mutate, when the source collection changes.
type InvertedIndex[T comparable] struct {
	postings map[string][]T
}

// BuildIndex tokenizes every field value of every item and appends the item
// to the posting list of each resulting term. Deterministic given the same
// inputs; items are never mutated.
func BuildIndex[T comparable](items []T, fields []FieldSpec[T]) *InvertedIndex[T] {
	ix := &InvertedIndex[T]{postings: make(map[string][]T)}
	for _, item := range items {
		for _, field := range fields {
			value := field.Value(item)
			if value == "" {
				continue
			}
			for _, term := range ParseQuery(value) {
				ix.postings[term] = append(ix.postings[term], item)
			}
		}
	}
	return ix
}

// Postings returns the posting list for a normalized term, or nil.
func (ix *InvertedIndex[T]) Postings(term string) []T {
	return ix.postings[term]
}

// Terms returns the number of distinct terms in the index.
func (ix *InvertedIndex[T]) Terms() int {
	return len(ix.postings)
}

// Search answers a multi-term query with AND semantics: an item is returned
// only when it appears in the posting list of every query term. The result
// preserves the order (and multiplicity) of the first term's postings.
// maxResults <= 0 means unbounded. Zero query terms yields nil; this is a
// structural membership test, not a scored rank.
func (ix *InvertedIndex[T]) Search(query string, maxResults int) []T {
	terms := ParseQuery(query)
	if len(terms) == 0 {
		return nil
	}

	results := ix.postings[terms[0]]
	for _, term := range terms[1:] {
		if len(results) == 0 {
			return nil
		}
		members := make(map[T]struct{}, len(ix.postings[term]))
		for _, item := range ix.postings[term] {
			members[item] = struct{}{}
		}
		kept := results[:0:0]
		for _, item := range results {
			if _, ok := members[item]; ok {
				kept = append(kept, item)
			}
		}
		results = kept
	}

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
