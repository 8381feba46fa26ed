package models

import "fmt"

// SearchType selects which collections a search runs over.
type SearchType string

const (
	SearchAll        SearchType = "all"
	SearchProjects   SearchType = "projects"
	SearchVisits     SearchType = "visits"
	SearchWorksheets SearchType = "worksheets"
)

// Includes reports whether the filter covers the given source type. An
// unrecognized filter covers nothing, so an unknown type contributes zero
// results rather than failing.
func (t SearchType) Includes(source SourceType) bool {
	switch t {
	case SearchAll:
		return true
	case SearchProjects:
		return source == SourceProject
	case SearchVisits:
		return source == SourceVisit
	case SearchWorksheets:
		return source == SourceWorksheet
	default:
		return false
	}
}

// SearchQuery represents a search request.
type SearchQuery struct {
	Query string     `json:"query"`
	Type  SearchType `json:"type,omitempty"`
	Limit int        `json:"limit,omitempty"`
}

// Validate ensures the search query has valid fields and sets defaults.
// Returns an error for an empty query so the API layer can distinguish
// "no query entered" from "query entered, zero matches".
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.Type == "" {
		q.Type = SearchAll
	}
	if q.Limit <= 0 || q.Limit > 20 {
		q.Limit = 20
	}
	return nil
}
