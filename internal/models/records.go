// Package models defines the field-service records and the search request
// and result shapes exchanged with the API layer.
package models

import (
	"strings"
	"time"
)

// Record identifier prefixes. Every record ID begins with the prefix of its
// logical type; rows that end up in the wrong table are routed back to the
// collection their prefix names before search ever sees them.
const (
	ProjectIDPrefix   = "prj_"
	VisitIDPrefix     = "vst_"
	WorksheetIDPrefix = "wks_"
	TeamIDPrefix      = "tm_"
)

// SourceType identifies which record collection a search result came from.
type SourceType string

const (
	SourceProject   SourceType = "project"
	SourceVisit     SourceType = "visit"
	SourceWorksheet SourceType = "worksheet"
)

// SourceTypeForID returns the source type a record ID's prefix names, or ""
// when the prefix is unrecognized.
func SourceTypeForID(id string) SourceType {
	switch {
	case strings.HasPrefix(id, ProjectIDPrefix):
		return SourceProject
	case strings.HasPrefix(id, VisitIDPrefix):
		return SourceVisit
	case strings.HasPrefix(id, WorksheetIDPrefix):
		return SourceWorksheet
	default:
		return ""
	}
}

// Project is a field-service project (job site engagement).
type Project struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ClientName  string    `json:"client_name" db:"client_name"`
	SiteAddress string    `json:"site_address" db:"site_address"`
	Description string    `json:"description" db:"description"`
	TeamID      string    `json:"team_id" db:"team_id"`
	Status      string    `json:"status" db:"status"`
	Archived    bool      `json:"archived" db:"archived"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Visit is one logged site visit (activity record) on a project.
type Visit struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	TeamID     string    `json:"team_id" db:"team_id"`
	Summary    string    `json:"summary" db:"summary"`
	Notes      string    `json:"notes" db:"notes"`
	Technician string    `json:"technician" db:"technician"`
	VisitedAt  time.Time `json:"visited_at" db:"visited_at"`
	Archived   bool      `json:"archived" db:"archived"`
}

// Worksheet is an unstructured sheet imported from a dropped spreadsheet;
// Content is the flattened cell text.
type Worksheet struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	SourceFile string    `json:"source_file" db:"source_file"`
	ImportedAt time.Time `json:"imported_at" db:"imported_at"`
	Archived   bool      `json:"archived" db:"archived"`
}

// Team is an auxiliary lookup record; teams resolve subtitle display names
// and are never searched themselves.
type Team struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
