package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// MockLocationsService is a mock implementation of locations.Service
type MockLocationsService struct {
	mock.Mock
}

// GetLocations mocks the GetLocations method of locations.Service
func (m *MockLocationsService) GetLocations(ctx context.Context, forceRefresh bool) ([]models.Location, models.LocationStatus) {
	args := m.Called(ctx, forceRefresh)

	var locs []models.Location
	if v := args.Get(0); v != nil {
		locs = v.([]models.Location)
	}

	return locs, args.Get(1).(models.LocationStatus)
}

// SearchLocations mocks the SearchLocations method of locations.Service
func (m *MockLocationsService) SearchLocations(ctx context.Context, term string, limit int) ([]models.Location, models.LocationStatus) {
	args := m.Called(ctx, term, limit)

	var locs []models.Location
	if v := args.Get(0); v != nil {
		locs = v.([]models.Location)
	}

	return locs, args.Get(1).(models.LocationStatus)
}
