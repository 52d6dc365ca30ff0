package cache

import (
	"context"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// Store defines the interface for location cache persistence.
// External packages should use this interface, not the concrete implementations.
// Read returns models.ErrCacheMiss when no cache exists. Write replaces the
// whole record atomically: no reader ever observes a half-written cache.
type Store interface {
	Read(ctx context.Context) (*models.LocationCache, error)
	Write(ctx context.Context, rec *models.LocationCache) error
}
