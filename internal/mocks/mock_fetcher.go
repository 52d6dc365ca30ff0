package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// MockLocationFetcher is a mock implementation of fetcher.LocationService
type MockLocationFetcher struct {
	mock.Mock
}

// FetchLocations mocks the FetchLocations method of fetcher.LocationService
func (m *MockLocationFetcher) FetchLocations(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	if locs := args.Get(0); locs != nil {
		return locs.([]models.Location), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockVolumeFetcher is a mock implementation of fetcher.VolumeService
type MockVolumeFetcher struct {
	mock.Mock
}

// FetchVolumes mocks the FetchVolumes method of fetcher.VolumeService
func (m *MockVolumeFetcher) FetchVolumes(ctx context.Context, keywords []string, languageCode string, locationCode int) ([]models.KeywordVolume, []models.TaskWarning, error) {
	args := m.Called(ctx, keywords, languageCode, locationCode)

	var records []models.KeywordVolume
	if v := args.Get(0); v != nil {
		records = v.([]models.KeywordVolume)
	}

	var warnings []models.TaskWarning
	if v := args.Get(1); v != nil {
		warnings = v.([]models.TaskWarning)
	}

	return records, warnings, args.Error(2)
}
