package volumes

import (
	"context"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// Service defines the interface for keyword volume lookups
// External packages should use this interface, not the concrete implementations
type Service interface {
	GetVolumes(ctx context.Context, req models.VolumeRequest) (*models.VolumeReport, error)
}
