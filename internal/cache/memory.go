package cache

import (
	"context"
	"sync"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// MemoryStore implements Store using process-lifetime memory
type MemoryStore struct {
	mutex sync.RWMutex
	rec   *models.LocationCache
}

// NewMemoryStore creates a new in-memory location cache store
func NewMemoryStore() Store {
	return newMemoryStore()
}

// newMemoryStore creates the concrete implementation
func newMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read returns the cached record, or models.ErrCacheMiss if none was written
func (m *MemoryStore) Read(ctx context.Context) (*models.LocationCache, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.rec == nil || len(m.rec.Locations) == 0 {
		return nil, models.ErrCacheMiss
	}

	return m.rec, nil
}

// Write replaces the cached record wholesale
func (m *MemoryStore) Write(ctx context.Context, rec *models.LocationCache) error {
	// Copy the slice so later mutations by the caller can't tear the record
	cp := &models.LocationCache{
		Locations: make([]models.Location, len(rec.Locations)),
		FetchedAt: rec.FetchedAt,
	}
	copy(cp.Locations, rec.Locations)

	m.mutex.Lock()
	m.rec = cp
	m.mutex.Unlock()

	return nil
}
