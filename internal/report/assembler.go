package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/socialpulse/internal/models"
)

// BuildReport packages a run's outputs into the immutable artifact. Pure
// construction; persistence happens in a Store.
func BuildReport(posts []models.Post, stats models.SentimentStats, issues []models.Issue) models.Report {
	return models.Report{
		GeneratedAt:    time.Now().UTC(),
		RunID:          uuid.NewString(),
		TotalPosts:     len(posts),
		SentimentStats: stats,
		TopIssues:      issues,
		Posts:          posts,
	}
}

// FileStore persists the report as indented JSON with replace-on-success
// semantics: the document is marshaled fully in memory, written to a temp
// file in the target directory, and renamed over the previous artifact. A
// failure at any step leaves the prior artifact intact.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Save(ctx context.Context, report models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileStore] failed to marshal report: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return fmt.Errorf("[FileStore] failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore] failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore] failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("[FileStore] failed to replace report: %w", err)
	}

	slog.Info("[FileStore] Report saved",
		slog.String("path", s.Path),
		slog.Int("bytes", len(data)))
	return nil
}

// Load reads back the persisted artifact. Used by downstream consumers and
// the round-trip tests.
func (s *FileStore) Load() (models.Report, error) {
	var report models.Report

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return report, fmt.Errorf("[FileStore] failed to read report: %w", err)
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("[FileStore] failed to parse report: %w", err)
	}
	return report, nil
}
