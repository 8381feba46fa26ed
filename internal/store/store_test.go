package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlasfield/canvass/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.CreateTeam(ctx, &models.Team{ID: "tm_1", Name: "North Crew"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateProject(ctx, &models.Project{
		ID: "prj_1", Name: "Riverside Pump Upgrade", ClientName: "Acme Water", TeamID: "tm_1",
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateVisit(ctx, &models.Visit{
		ID: "vst_1", ProjectID: "prj_1", TeamID: "tm_1",
		Summary: "Pump inspection", Notes: "Replaced intake seal",
		Technician: "Aoki", VisitedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertWorksheet(ctx, &models.Worksheet{
		ID: "wks_1", Title: "Pump readings", Content: "pressure\tflow",
		SourceFile: "readings.xlsx", ImportedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
}

func TestViewSnapshot(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	view, err := s.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Projects) != 1 || view.Projects[0].ID != "prj_1" {
		t.Errorf("projects = %v", view.Projects)
	}
	if len(view.Visits) != 1 || view.Visits[0].Summary != "Pump inspection" {
		t.Errorf("visits = %v", view.Visits)
	}
	if len(view.Worksheets) != 1 || view.Worksheets[0].SourceFile != "readings.xlsx" {
		t.Errorf("worksheets = %v", view.Worksheets)
	}
	if view.TeamName("tm_1") != "North Crew" {
		t.Errorf("team lookup = %q", view.TeamName("tm_1"))
	}

	// Second call returns the cached snapshot
	again, err := s.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again != view {
		t.Error("expected cached view to be reused")
	}
}

func TestWriteInvalidatesSnapshot(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	view, err := s.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.CreateProject(ctx, &models.Project{ID: "prj_2", Name: "Harbor Crane Service"}); err != nil {
		t.Fatal(err)
	}
	fresh, err := s.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fresh == view {
		t.Fatal("write did not invalidate cached view")
	}
	if len(fresh.Projects) != 2 {
		t.Errorf("fresh snapshot has %d projects, want 2", len(fresh.Projects))
	}
}

func TestWorksheetIndex(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	ix, err := s.WorksheetIndex(ctx)
	if err != nil {
		t.Fatal(err)
	}
	hits := ix.Search("readings", 0)
	if len(hits) != 1 || hits[0].ID != "wks_1" {
		t.Fatalf("index search = %v", hits)
	}

	// Rebuilt, not mutated, after a write
	if err := s.UpsertWorksheet(ctx, &models.Worksheet{
		ID: "wks_2", Title: "Valve readings", Content: "torque",
		SourceFile: "valves.xlsx", ImportedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	rebuilt, err := s.WorksheetIndex(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rebuilt == ix {
		t.Fatal("write did not invalidate cached index")
	}
	if hits := rebuilt.Search("readings", 0); len(hits) != 2 {
		t.Errorf("rebuilt index search found %d, want 2", len(hits))
	}
}

func TestGetWorksheet(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	w, err := s.GetWorksheet(ctx, "wks_1")
	if err != nil {
		t.Fatal(err)
	}
	if w.Title != "Pump readings" {
		t.Errorf("title = %q", w.Title)
	}
	if _, err := s.GetWorksheet(ctx, "wks_missing"); err == nil {
		t.Error("expected error for missing worksheet")
	}
}

func TestWorksheetIDBySource(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	id, err := s.WorksheetIDBySource(ctx, "readings.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if id != "wks_1" {
		t.Errorf("id = %q, want wks_1", id)
	}
	id, err = s.WorksheetIDBySource(ctx, "nope.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if id != "" {
		t.Errorf("id for unknown source = %q, want empty", id)
	}
}

func TestCounts(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	if err := s.CreateProject(ctx, &models.Project{ID: "prj_9", Name: "Old Job", Archived: true}); err != nil {
		t.Fatal(err)
	}
	projects, visits, worksheets, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if projects != 1 || visits != 1 || worksheets != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1 (archived excluded)", projects, visits, worksheets)
	}
}
