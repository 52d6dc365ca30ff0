package fetcher

import (
	"context"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// LocationService defines the interface for fetching the provider location list
// External packages should use this interface, not the concrete implementations
type LocationService interface {
	FetchLocations(ctx context.Context) ([]models.Location, error)
}

// VolumeService defines the interface for fetching keyword volume metrics.
// Returned records carry no location name; the caller stamps it, since the
// provider response does not echo the location back.
type VolumeService interface {
	FetchVolumes(ctx context.Context, keywords []string, languageCode string, locationCode int) ([]models.KeywordVolume, []models.TaskWarning, error)
}
