// Package store provides the SQLite-backed record store and the in-memory
// collection snapshots the search engine runs over.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/atlasfield/canvass/internal/models"
	"github.com/atlasfield/canvass/internal/search"
)

// Store wraps the record database. It owns the optional cached search
// structures: a collections snapshot and a worksheet inverted index. Both
// have exactly two states, absent and built; any write invalidates them and
// the next reader rebuilds from scratch (build-then-publish, never in-place
// mutation).
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	view    *search.CollectionsView
	wsIndex *search.InvertedIndex[*models.Worksheet]
}

// Open opens or creates the record database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client_name TEXT,
		site_address TEXT,
		description TEXT,
		team_id TEXT,
		status TEXT,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);

	CREATE TABLE IF NOT EXISTS visits (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		team_id TEXT,
		summary TEXT,
		notes TEXT,
		technician TEXT,
		visited_at TIMESTAMP,
		archived INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (project_id) REFERENCES projects(id)
	);

	CREATE INDEX IF NOT EXISTS idx_visits_project_id ON visits(project_id);

	CREATE TABLE IF NOT EXISTS worksheets (
		id TEXT PRIMARY KEY,
		title TEXT,
		content TEXT NOT NULL,
		source_file TEXT,
		imported_at TIMESTAMP,
		archived INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Invalidate drops the cached snapshot and worksheet index. Called after
// every write; readers rebuild on next access.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.view = nil
	s.wsIndex = nil
	s.mu.Unlock()
}

// View returns the collections snapshot for searching, loading it from the
// database when no cached one exists. The returned view and everything it
// references are read-only.
func (s *Store) View(ctx context.Context) (*search.CollectionsView, error) {
	s.mu.Lock()
	cached := s.view
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	view, err := s.loadView(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return view, nil
}

// WorksheetIndex returns the inverted index over worksheets, building it
// from the current snapshot when absent.
func (s *Store) WorksheetIndex(ctx context.Context) (*search.InvertedIndex[*models.Worksheet], error) {
	s.mu.Lock()
	cached := s.wsIndex
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	view, err := s.View(ctx)
	if err != nil {
		return nil, err
	}
	ix := search.BuildIndex(view.Worksheets, search.WorksheetFields)

	s.mu.Lock()
	s.wsIndex = ix
	s.mu.Unlock()
	return ix, nil
}

func (s *Store) loadView(ctx context.Context) (*search.CollectionsView, error) {
	view := &search.CollectionsView{TeamNames: make(map[string]string)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, client_name, site_address, description, team_id, status, archived, created_at, updated_at
		 FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	for rows.Next() {
		var p models.Project
		var archived int
		if err := rows.Scan(&p.ID, &p.Name, &p.ClientName, &p.SiteAddress, &p.Description,
			&p.TeamID, &p.Status, &archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			_ = rows.Close()
			return nil, err
		}
		p.Archived = archived != 0
		view.Projects = append(view.Projects, &p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, project_id, team_id, summary, notes, technician, visited_at, archived
		 FROM visits ORDER BY visited_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load visits: %w", err)
	}
	for rows.Next() {
		var v models.Visit
		var archived int
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.TeamID, &v.Summary, &v.Notes,
			&v.Technician, &v.VisitedAt, &archived); err != nil {
			_ = rows.Close()
			return nil, err
		}
		v.Archived = archived != 0
		view.Visits = append(view.Visits, &v)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, title, content, source_file, imported_at, archived
		 FROM worksheets ORDER BY imported_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load worksheets: %w", err)
	}
	for rows.Next() {
		var w models.Worksheet
		var archived int
		if err := rows.Scan(&w.ID, &w.Title, &w.Content, &w.SourceFile, &w.ImportedAt, &archived); err != nil {
			_ = rows.Close()
			return nil, err
		}
		w.Archived = archived != 0
		view.Worksheets = append(view.Worksheets, &w)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, name FROM teams`)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		view.TeamNames[t.ID] = t.Name
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	return view, nil
}

// CreateTeam inserts a team.
func (s *Store) CreateTeam(ctx context.Context, team *models.Team) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name) VALUES (?, ?)`, team.ID, team.Name)
	if err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// CreateProject inserts a project.
func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, client_name, site_address, description, team_id, status, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.ClientName, p.SiteAddress, p.Description, p.TeamID, p.Status, boolToInt(p.Archived), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// CreateVisit inserts a visit log entry.
func (s *Store) CreateVisit(ctx context.Context, v *models.Visit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (id, project_id, team_id, summary, notes, technician, visited_at, archived)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.ProjectID, v.TeamID, v.Summary, v.Notes, v.Technician, v.VisitedAt, boolToInt(v.Archived))
	if err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// UpsertWorksheet inserts or replaces a worksheet. Re-imports of the same
// source file reuse the existing row's ID via the importer.
func (s *Store) UpsertWorksheet(ctx context.Context, w *models.Worksheet) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO worksheets (id, title, content, source_file, imported_at, archived)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Title, w.Content, w.SourceFile, w.ImportedAt, boolToInt(w.Archived))
	if err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// GetWorksheet returns a worksheet by ID.
func (s *Store) GetWorksheet(ctx context.Context, id string) (*models.Worksheet, error) {
	var w models.Worksheet
	var archived int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, source_file, imported_at, archived FROM worksheets WHERE id = ?`, id,
	).Scan(&w.ID, &w.Title, &w.Content, &w.SourceFile, &w.ImportedAt, &archived)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("worksheet not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	w.Archived = archived != 0
	return &w, nil
}

// WorksheetIDBySource returns the ID of the worksheet imported from the
// given source file, or "" when none exists.
func (s *Store) WorksheetIDBySource(ctx context.Context, sourceFile string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM worksheets WHERE source_file = ?`, sourceFile).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Counts returns the number of non-archived records per collection.
func (s *Store) Counts(ctx context.Context) (projects, visits, worksheets int64, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE archived = 0`).Scan(&projects); err != nil {
		return
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits WHERE archived = 0`).Scan(&visits); err != nil {
		return
	}
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM worksheets WHERE archived = 0`).Scan(&worksheets)
	return
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
