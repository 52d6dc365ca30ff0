package locations

import (
	"context"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// Service defines the interface for location list access with cache policy.
// Both operations are total: every combination of cache state and fetch
// outcome yields a defined (locations, status) pair, never an error.
type Service interface {
	GetLocations(ctx context.Context, forceRefresh bool) ([]models.Location, models.LocationStatus)
	SearchLocations(ctx context.Context, term string, limit int) ([]models.Location, models.LocationStatus)
}
