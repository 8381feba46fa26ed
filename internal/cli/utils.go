// Package cli provides CLI utilities for Canvass.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atlasfield/canvass/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results for %q in %dms (%d projects, %d visits, %d worksheets)\n\n",
		response.Stats.Total, response.Query, response.QueryTime,
		response.Stats.Projects, response.Stats.Visits, response.Stats.Worksheets)
	for rank, result := range response.Results {
		writeOneResult(w, rank+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "[%s] Rank: %d | Score: %.2f\n", result.SourceType, rank, result.Score)
	fmt.Fprintf(w, "ID: %s\n", result.ID)
	if result.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", StripMarkTags(result.Title))
	}
	if result.Subtitle != "" {
		fmt.Fprintf(w, "Subtitle: %s\n", result.Subtitle)
	}
	if result.Snippet != "" {
		fmt.Fprintf(w, "\n%s\n", StripMarkTags(result.Snippet))
	}
	fmt.Fprintln(w)
}

// StripMarkTags removes the <mark> highlight wrappers the API layer adds,
// for plain-terminal output.
func StripMarkTags(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}
