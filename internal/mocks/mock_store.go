package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// MockStore is a mock implementation of cache.Store
type MockStore struct {
	mock.Mock
}

// Read mocks the Read method of cache.Store
func (m *MockStore) Read(ctx context.Context) (*models.LocationCache, error) {
	args := m.Called(ctx)
	if rec := args.Get(0); rec != nil {
		return rec.(*models.LocationCache), args.Error(1)
	}
	return nil, args.Error(1)
}

// Write mocks the Write method of cache.Store
func (m *MockStore) Write(ctx context.Context, rec *models.LocationCache) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
