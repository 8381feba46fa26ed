package search

import (
	"sort"

	"github.com/atlasfield/canvass/internal/models"
)

// Searchable surfaces per record type. Order matters: matches are
// accumulated field by field in this order, and posting lists inherit it.
var (
	ProjectFields = []FieldSpec[*models.Project]{
		{Name: "name", Value: func(p *models.Project) string { return p.Name }},
		{Name: "client_name", Value: func(p *models.Project) string { return p.ClientName }},
		{Name: "site_address", Value: func(p *models.Project) string { return p.SiteAddress }},
		{Name: "description", Value: func(p *models.Project) string { return p.Description }},
	}

	VisitFields = []FieldSpec[*models.Visit]{
		{Name: "summary", Value: func(v *models.Visit) string { return v.Summary }},
		{Name: "notes", Value: func(v *models.Visit) string { return v.Notes }},
		{Name: "technician", Value: func(v *models.Visit) string { return v.Technician }},
	}

	WorksheetFields = []FieldSpec[*models.Worksheet]{
		{Name: "title", Value: func(w *models.Worksheet) string { return w.Title }},
		{Name: "content", Value: func(w *models.Worksheet) string { return w.Content }},
	}
)

// CollectionsView bundles the record collections for one search, plus the
// team lookup used to render subtitles. All slices and the lookup are
// read-only for the engine.
type CollectionsView struct {
	Projects   []*models.Project
	Visits     []*models.Visit
	Worksheets []*models.Worksheet
	TeamNames  map[string]string
}

// TeamName resolves a team ID to its display name, or "" when unknown.
func (v *CollectionsView) TeamName(teamID string) string {
	return v.TeamNames[teamID]
}

// GlobalSearch runs the ranked matcher over every collection the filter
// includes (fuzzy matching on), tags each hit with its source type, merges
// all hits into one list sorted by score descending (stable), and truncates
// to GlobalLimit. Each per-collection search is capped at DefaultLimit, and
// stats count the merged list before the global truncation.
//
// Archived records are excluded before scoring, and a record whose ID prefix
// names a different type is refiled to that type's collection before
// scoring, so it is matched exactly once, under its own type.
func GlobalSearch(query string, view *CollectionsView, filter models.SearchType) ([]models.SearchResult, models.SearchStats) {
	var stats models.SearchStats
	if len(ParseQuery(query)) == 0 {
		return nil, stats
	}

	projects, visits, worksheets := routeCollections(view)
	var merged []models.SearchResult

	if filter.Includes(models.SourceProject) {
		for _, hit := range AdvancedSearch(projects, query, ProjectFields, true, DefaultLimit) {
			p := hit.Item
			subtitle := view.TeamName(p.TeamID)
			if subtitle == "" {
				subtitle = p.ClientName
			}
			merged = append(merged, models.SearchResult{
				SourceType:  models.SourceProject,
				ID:          p.ID,
				Title:       p.Name,
				Subtitle:    subtitle,
				Description: p.Description,
				Score:       hit.Score,
				Project:     p,
			})
			stats.Projects++
		}
	}

	if filter.Includes(models.SourceVisit) {
		for _, hit := range AdvancedSearch(visits, query, VisitFields, true, DefaultLimit) {
			v := hit.Item
			subtitle := view.TeamName(v.TeamID)
			if subtitle == "" {
				subtitle = v.Technician
			}
			merged = append(merged, models.SearchResult{
				SourceType:  models.SourceVisit,
				ID:          v.ID,
				Title:       v.Summary,
				Subtitle:    subtitle,
				Description: v.Notes,
				Score:       hit.Score,
				Visit:       v,
			})
			stats.Visits++
		}
	}

	if filter.Includes(models.SourceWorksheet) {
		for _, hit := range AdvancedSearch(worksheets, query, WorksheetFields, true, DefaultLimit) {
			w := hit.Item
			merged = append(merged, models.SearchResult{
				SourceType:  models.SourceWorksheet,
				ID:          w.ID,
				Title:       w.Title,
				Subtitle:    w.SourceFile,
				Description: w.Content,
				Score:       hit.Score,
				Worksheet:   w,
			})
			stats.Worksheets++
		}
	}

	stats.Total = len(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > GlobalLimit {
		merged = merged[:GlobalLimit]
	}
	return merged, stats
}

// routeCollections files every non-archived record under the collection its
// ID prefix names. A row that surfaced in the wrong collection is converted
// field-wise (title-like field to title-like, body to body); IDs with no
// recognized prefix stay where they are. Output order is deterministic for
// a given view: the projects, visits, and worksheets slices are walked in
// that order. The input view is never mutated.
func routeCollections(view *CollectionsView) (projects []*models.Project, visits []*models.Visit, worksheets []*models.Worksheet) {
	for _, p := range view.Projects {
		if p.Archived {
			continue
		}
		switch models.SourceTypeForID(p.ID) {
		case models.SourceVisit:
			visits = append(visits, &models.Visit{
				ID: p.ID, TeamID: p.TeamID, Summary: p.Name, Notes: p.Description,
			})
		case models.SourceWorksheet:
			worksheets = append(worksheets, &models.Worksheet{
				ID: p.ID, Title: p.Name, Content: p.Description,
			})
		default:
			projects = append(projects, p)
		}
	}
	for _, v := range view.Visits {
		if v.Archived {
			continue
		}
		switch models.SourceTypeForID(v.ID) {
		case models.SourceProject:
			projects = append(projects, &models.Project{
				ID: v.ID, TeamID: v.TeamID, Name: v.Summary, Description: v.Notes,
			})
		case models.SourceWorksheet:
			worksheets = append(worksheets, &models.Worksheet{
				ID: v.ID, Title: v.Summary, Content: v.Notes,
			})
		default:
			visits = append(visits, v)
		}
	}
	for _, w := range view.Worksheets {
		if w.Archived {
			continue
		}
		switch models.SourceTypeForID(w.ID) {
		case models.SourceProject:
			projects = append(projects, &models.Project{
				ID: w.ID, Name: w.Title, Description: w.Content,
			})
		case models.SourceVisit:
			visits = append(visits, &models.Visit{
				ID: w.ID, Summary: w.Title, Notes: w.Content,
			})
		default:
			worksheets = append(worksheets, w)
		}
	}
	return projects, visits, worksheets
}
