package search

import (
	"fmt"
	"testing"

	"github.com/atlasfield/canvass/internal/models"
)

func testView() *CollectionsView {
	return &CollectionsView{
		Projects: []*models.Project{
			{ID: "prj_1", Name: "Riverside Pump Upgrade", ClientName: "Acme Water", TeamID: "tm_1"},
			// No letter of "pump" appears in prj_2's fields, so even the
			// fuzzy tier scores it 0 for that query.
			{ID: "prj_2", Name: "Harbor Crane Service", ClientName: "Hillside Gas", TeamID: "tm_2"},
		},
		Visits: []*models.Visit{
			{ID: "vst_1", ProjectID: "prj_1", TeamID: "tm_1", Summary: "Pump inspection", Notes: "Replaced seal on intake pump", Technician: "Aoki"},
		},
		Worksheets: []*models.Worksheet{
			{ID: "wks_1", Title: "Pump readings March", Content: "pressure\tflow\n1.2\t300", SourceFile: "readings.xlsx"},
		},
		TeamNames: map[string]string{"tm_1": "North Crew", "tm_2": "Harbor Crew"},
	}
}

func TestGlobalSearchMergesAndTags(t *testing.T) {
	results, stats := GlobalSearch("pump", testView(), models.SearchAll)

	if stats.Total != 3 || stats.Projects != 1 || stats.Visits != 1 || stats.Worksheets != 1 {
		t.Fatalf("stats = %+v, want 1/1/1 total 3", stats)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		switch r.SourceType {
		case models.SourceProject:
			if r.Project == nil || r.Subtitle != "North Crew" {
				t.Errorf("project result missing record or team subtitle: %+v", r)
			}
		case models.SourceVisit:
			if r.Visit == nil || r.Subtitle != "North Crew" {
				t.Errorf("visit result missing record or team subtitle: %+v", r)
			}
		case models.SourceWorksheet:
			if r.Worksheet == nil || r.Subtitle != "readings.xlsx" {
				t.Errorf("worksheet result missing record or source file: %+v", r)
			}
		default:
			t.Errorf("unexpected source type %q", r.SourceType)
		}
		if r.Score <= 0 {
			t.Errorf("result %s has non-positive score %v", r.ID, r.Score)
		}
	}
}

func TestGlobalSearchEmptyQuery(t *testing.T) {
	results, stats := GlobalSearch("   ", testView(), models.SearchAll)
	if results != nil || stats.Total != 0 {
		t.Errorf("empty query: results=%v stats=%+v, want none", results, stats)
	}
}

func TestGlobalSearchTypeFilter(t *testing.T) {
	results, stats := GlobalSearch("pump", testView(), models.SearchProjects)
	if stats.Total != 1 || stats.Projects != 1 || stats.Visits != 0 {
		t.Fatalf("stats = %+v, want projects only", stats)
	}
	if len(results) != 1 || results[0].SourceType != models.SourceProject {
		t.Fatalf("results = %v, want single project", results)
	}

	// Unknown filter matches no collection
	results, stats = GlobalSearch("pump", testView(), models.SearchType("invoices"))
	if len(results) != 0 || stats.Total != 0 {
		t.Errorf("unknown filter: results=%v stats=%+v, want none", results, stats)
	}
}

func TestGlobalSearchExcludesArchived(t *testing.T) {
	view := testView()
	view.Projects = append(view.Projects,
		&models.Project{ID: "prj_3", Name: "Pump House Rebuild", Archived: true})

	results, stats := GlobalSearch("pump", view, models.SearchProjects)
	if stats.Total != 1 {
		t.Errorf("stats.Total = %d, want 1 (archived excluded)", stats.Total)
	}
	for _, r := range results {
		if r.ID == "prj_3" {
			t.Error("archived project returned")
		}
	}
}

func TestGlobalSearchPrefixRouting(t *testing.T) {
	view := testView()
	// A row with a worksheet prefix that surfaced in the projects collection
	// is refiled and scored as a worksheet, exactly once.
	view.Projects = append(view.Projects,
		&models.Project{ID: "wks_9", Name: "Pump stray sheet", Description: "pump torque readings"})

	results, stats := GlobalSearch("pump", view, models.SearchAll)
	if stats.Projects != 1 || stats.Worksheets != 2 || stats.Total != 4 {
		t.Fatalf("stats = %+v, want the stray row counted under worksheets", stats)
	}
	var stray *models.SearchResult
	for i := range results {
		if results[i].ID == "wks_9" {
			if stray != nil {
				t.Fatal("routed record returned twice")
			}
			stray = &results[i]
		}
	}
	if stray == nil {
		t.Fatal("routed record missing from results")
	}
	if stray.SourceType != models.SourceWorksheet || stray.Worksheet == nil {
		t.Errorf("routed record tagged %q, want worksheet: %+v", stray.SourceType, stray)
	}
	if stray.Title != "Pump stray sheet" {
		t.Errorf("routed record title = %q, want name carried over", stray.Title)
	}

	// Under a single-type filter the stray row counts only for its own type.
	_, stats = GlobalSearch("pump", view, models.SearchProjects)
	if stats.Total != 1 {
		t.Errorf("stats.Total = %d, want 1 under projects filter", stats.Total)
	}
	_, stats = GlobalSearch("pump", view, models.SearchWorksheets)
	if stats.Total != 2 {
		t.Errorf("stats.Total = %d, want 2 under worksheets filter", stats.Total)
	}
}

func TestGlobalSearchRoutesFromEveryCollection(t *testing.T) {
	view := &CollectionsView{
		Visits: []*models.Visit{
			{ID: "prj_7", Summary: "Pump yard extension", Notes: "stray project row"},
		},
		Worksheets: []*models.Worksheet{
			{ID: "vst_7", Title: "Pump seal check", Content: "stray visit row"},
		},
		TeamNames: map[string]string{},
	}

	results, stats := GlobalSearch("pump", view, models.SearchAll)
	if stats.Projects != 1 || stats.Visits != 1 || stats.Worksheets != 0 {
		t.Fatalf("stats = %+v, want one project and one visit", stats)
	}
	for _, r := range results {
		switch r.ID {
		case "prj_7":
			if r.SourceType != models.SourceProject || r.Title != "Pump yard extension" {
				t.Errorf("prj_7 routed wrong: %+v", r)
			}
		case "vst_7":
			if r.SourceType != models.SourceVisit || r.Title != "Pump seal check" {
				t.Errorf("vst_7 routed wrong: %+v", r)
			}
		}
	}
}

func TestGlobalSearchPerCollectionCap(t *testing.T) {
	view := &CollectionsView{TeamNames: map[string]string{}}
	for i := 0; i < DefaultLimit+10; i++ {
		view.Projects = append(view.Projects, &models.Project{
			ID:   fmt.Sprintf("prj_%d", i),
			Name: "Pump Station",
		})
	}

	results, stats := GlobalSearch("pump", view, models.SearchAll)
	if stats.Projects != DefaultLimit || stats.Total != DefaultLimit {
		t.Errorf("stats = %+v, want per-collection cap of %d", stats, DefaultLimit)
	}
	if len(results) != GlobalLimit {
		t.Errorf("len(results) = %d, want %d", len(results), GlobalLimit)
	}
}

func TestGlobalSearchStatsBeforeTruncation(t *testing.T) {
	view := &CollectionsView{TeamNames: map[string]string{}}
	for i := 0; i < 25; i++ {
		view.Projects = append(view.Projects, &models.Project{
			ID:   fmt.Sprintf("prj_%d", i),
			Name: "Pump Station",
		})
	}

	results, stats := GlobalSearch("pump", view, models.SearchAll)
	if len(results) != GlobalLimit {
		t.Errorf("len(results) = %d, want %d", len(results), GlobalLimit)
	}
	if stats.Total != 25 {
		t.Errorf("stats.Total = %d, want 25 (counted before truncation)", stats.Total)
	}
}

func TestGlobalSearchSortedDescending(t *testing.T) {
	results, _ := GlobalSearch("pump inspection", testView(), models.SearchAll)
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %v before %v", results[i-1].Score, results[i].Score)
		}
	}
}
