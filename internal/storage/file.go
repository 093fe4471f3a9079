package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"newslens/internal/types"
)

// FileStore keeps one pretty-printed JSON document per keyword under a
// data directory. It is the default backend: inspectable with a text
// editor and diff-friendly for version-controlled data directories.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.StorageError{Backend: "file", Err: err}
	}
	return &FileStore{
		dir:    dir,
		logger: logger.With("component", "file_store"),
	}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Save(_ context.Context, report *types.StoredReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &types.StorageError{Backend: "file", Keyword: report.Keyword, Err: err}
	}
	if err := os.WriteFile(s.path(report.Keyword), data, 0o644); err != nil {
		return &types.StorageError{Backend: "file", Keyword: report.Keyword, Err: err}
	}
	s.logger.Debug("report saved", "keyword", report.Keyword, "bytes", len(data))
	return nil
}

func (s *FileStore) Load(_ context.Context, keyword string) (*types.StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(keyword))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &types.StorageError{Backend: "file", Keyword: keyword, Err: types.ErrReportNotFound}
	}
	if err != nil {
		return nil, &types.StorageError{Backend: "file", Keyword: keyword, Err: err}
	}

	var report types.StoredReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &types.StorageError{Backend: "file", Keyword: keyword, Err: err}
	}
	return &report, nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &types.StorageError{Backend: "file", Err: err}
	}

	var keywords []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		keywords = append(keywords, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(keywords)
	return keywords, nil
}

func (s *FileStore) Delete(_ context.Context, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(keyword))
	if errors.Is(err, os.ErrNotExist) {
		return &types.StorageError{Backend: "file", Keyword: keyword, Err: types.ErrReportNotFound}
	}
	if err != nil {
		return &types.StorageError{Backend: "file", Keyword: keyword, Err: err}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// path maps a keyword onto a filename. Path separators in keywords are
// flattened so a keyword can never escape the data directory.
func (s *FileStore) path(keyword string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", string(filepath.Separator), "_").Replace(keyword)
	return filepath.Join(s.dir, name+".json")
}
