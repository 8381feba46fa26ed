package models

// SearchResult is one cross-collection hit, tagged with the collection it
// came from. Exactly one of Project, Visit, or Worksheet is non-nil,
// matching SourceType; the pointers reference store-owned records and are
// read-only. Results are created fresh per query and never persisted.
type SearchResult struct {
	SourceType  SourceType `json:"source_type"`
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Description string     `json:"description,omitempty"`
	Snippet     string     `json:"snippet,omitempty"`
	Score       float64    `json:"score"`

	Project   *Project   `json:"project,omitempty"`
	Visit     *Visit     `json:"visit,omitempty"`
	Worksheet *Worksheet `json:"worksheet,omitempty"`
}

// SearchStats counts matches before global truncation, so the UI can report
// "N results" while showing only the top slice.
type SearchStats struct {
	Total      int `json:"total"`
	Projects   int `json:"projects"`
	Visits     int `json:"visits"`
	Worksheets int `json:"worksheets"`
}

// SearchResponse is the API payload for a search call.
type SearchResponse struct {
	Results   []SearchResult `json:"results"`
	Stats     SearchStats    `json:"stats"`
	Query     string         `json:"query"`
	QueryTime int64          `json:"query_time_ms"`
}
