package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atlasfield/canvass/internal/models"
	"github.com/atlasfield/canvass/internal/search"
	"github.com/atlasfield/canvass/pkg/utils"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// An empty query is rejected here rather than passed through, so
	// "no query entered" stays distinguishable from "zero matches".
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("search request",
		zap.String("query", query.Query),
		zap.String("type", string(query.Type)),
		zap.Int("limit", query.Limit),
	)

	view, err := s.store.View(r.Context())
	if err != nil {
		s.logger.Error("loading collections failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, stats := search.GlobalSearch(query.Query, view, query.Type)
	if len(results) > query.Limit {
		results = results[:query.Limit]
	}

	terms := search.ParseQuery(query.Query)
	for i := range results {
		s.annotate(&results[i], terms)
	}

	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Results:   results,
		Stats:     stats,
		Query:     query.Query,
		QueryTime: time.Since(startTime).Milliseconds(),
	})
}

// annotate decorates the visible slice of results: highlighted title and
// description plus a bounded context snippet around the first matching term.
func (s *Server) annotate(result *models.SearchResult, terms []string) {
	if len(terms) == 0 {
		return
	}
	if result.Description != "" {
		snippet := search.ExtractContext(result.Description, terms[0], s.searchConfig.ContextLen)
		result.Snippet = search.Highlight(snippet, terms)
	}
	result.Title = search.Highlight(result.Title, terms)
	result.Description = search.Highlight(
		utils.Truncate(result.Description, s.searchConfig.MaxDescription), terms)
}

func (s *Server) handleGetWorksheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws, err := s.store.GetWorksheet(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "worksheet not found")
		return
	}
	s.respondJSON(w, http.StatusOK, ws)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	projects, visits, worksheets, err := s.store.Counts(r.Context())
	if err != nil {
		s.logger.Error("stats: counting records failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int64{
		"projects":   projects,
		"visits":     visits,
		"worksheets": worksheets,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
