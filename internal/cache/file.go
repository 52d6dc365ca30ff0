package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// cachedDateLayout is the human-readable timestamp written into the cache file
const cachedDateLayout = "2006-01-02 15:04:05"

// fileDocument is the on-disk cache shape:
// {locations: [...], cached_date: string, total_count: int}
type fileDocument struct {
	Locations  []models.Location `json:"locations"`
	CachedDate string            `json:"cached_date"`
	TotalCount int               `json:"total_count"`
}

// FileStore implements Store using a JSON document at a fixed path.
// Cache age is taken from the file's modification time.
type FileStore struct {
	path string
}

// NewFileStore creates a new file-backed location cache store
func NewFileStore(path string) Store {
	return newFileStore(path)
}

// newFileStore creates the concrete implementation
func newFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read loads the cached location list, stamping FetchedAt from file mtime
func (f *FileStore) Read(ctx context.Context) (*models.LocationCache, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cache file: %w", err)
	}

	if len(doc.Locations) == 0 {
		return nil, models.ErrCacheMiss
	}

	return &models.LocationCache{
		Locations: doc.Locations,
		FetchedAt: info.ModTime(),
	}, nil
}

// Write replaces the cache file atomically via a temp file and rename
func (f *FileStore) Write(ctx context.Context, rec *models.LocationCache) error {
	doc := fileDocument{
		Locations:  rec.Locations,
		CachedDate: rec.FetchedAt.Format(cachedDateLayout),
		TotalCount: len(rec.Locations),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".locations_cache-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	// Preserve the fetch time as the file mtime so Read reports the right age
	if !rec.FetchedAt.IsZero() {
		_ = os.Chtimes(tmpName, time.Now(), rec.FetchedAt)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
