// Package importer turns dropped spreadsheet files into worksheet records.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/atlasfield/canvass/internal/models"
	"github.com/atlasfield/canvass/internal/store"
)

// Importer reads spreadsheets from the drop folder and upserts them into the
// store as worksheet records.
type Importer struct {
	store  *store.Store
	logger *zap.Logger
}

// New creates an importer. logger may be nil.
func New(s *store.Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: s, logger: logger}
}

// ImportFile imports a single spreadsheet. Re-importing a file that was
// imported before replaces the existing worksheet (same ID), so edited
// sheets do not pile up as duplicates.
func (im *Importer) ImportFile(ctx context.Context, path string) (*models.Worksheet, error) {
	content, err := flattenWorkbook(path)
	if err != nil {
		return nil, err
	}

	sourceFile := filepath.Base(path)
	id, err := im.store.WorksheetIDBySource(ctx, sourceFile)
	if err != nil {
		return nil, fmt.Errorf("lookup worksheet for %s: %w", sourceFile, err)
	}
	if id == "" {
		id = models.WorksheetIDPrefix + uuid.NewString()
	}

	ws := &models.Worksheet{
		ID:         id,
		Title:      titleFromFilename(sourceFile),
		Content:    content,
		SourceFile: sourceFile,
		ImportedAt: time.Now(),
	}
	if err := im.store.UpsertWorksheet(ctx, ws); err != nil {
		return nil, fmt.Errorf("store worksheet %s: %w", sourceFile, err)
	}

	im.logger.Info("worksheet imported",
		zap.String("id", ws.ID),
		zap.String("source_file", sourceFile),
		zap.Int("content_bytes", len(content)),
	)
	return ws, nil
}

// ImportDir imports every matching file in dir (non-recursive). Returns the
// number imported; files that fail to parse are logged and skipped.
func (im *Importer) ImportDir(ctx context.Context, dir string, extensions []string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read drop dir: %w", err)
	}
	imported := 0
	for _, entry := range entries {
		if entry.IsDir() || !MatchesExtension(entry.Name(), extensions) {
			continue
		}
		if _, err := im.ImportFile(ctx, filepath.Join(dir, entry.Name())); err != nil {
			im.logger.Warn("skipping file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		imported++
	}
	return imported, nil
}

// MatchesExtension reports whether the filename has one of the given
// extensions (case-insensitive). An empty list matches nothing.
func MatchesExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// flattenWorkbook joins all sheets into one text blob, cells tab-separated
// and rows newline-separated, for full-text matching.
func flattenWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.TrimSpace(base)
}
