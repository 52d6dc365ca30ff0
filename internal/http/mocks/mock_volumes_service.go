package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// MockVolumesService is a mock implementation of volumes.Service
type MockVolumesService struct {
	mock.Mock
}

// GetVolumes mocks the GetVolumes method of volumes.Service
func (m *MockVolumesService) GetVolumes(ctx context.Context, req models.VolumeRequest) (*models.VolumeReport, error) {
	args := m.Called(ctx, req)
	if report := args.Get(0); report != nil {
		return report.(*models.VolumeReport), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRateLimiter is a mock implementation of ratelimit.Service
type MockRateLimiter struct {
	mock.Mock
}

// Allow mocks the Allow method of ratelimit.Service
func (m *MockRateLimiter) Allow(clientIP string) bool {
	args := m.Called(clientIP)
	return args.Bool(0)
}
