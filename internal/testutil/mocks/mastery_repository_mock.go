package mocks

import (
	"context"

	"github.com/avelar/memora/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockMasteryRepository is a mock implementation of repository.MasteryRepository
type MockMasteryRepository struct {
	mock.Mock
}

func (m *MockMasteryRepository) Get(ctx context.Context, cardID int64) (*models.MasteryRow, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MasteryRow), args.Error(1)
}

func (m *MockMasteryRepository) Upsert(ctx context.Context, row models.MasteryRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockMasteryRepository) CountsByState(ctx context.Context, learnerID, projectID int64) (map[string]int, error) {
	args := m.Called(ctx, learnerID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockMasteryRepository) RefreshCache(ctx context.Context, learnerID int64) error {
	args := m.Called(ctx, learnerID)
	return args.Error(0)
}

func (m *MockMasteryRepository) CachedCounts(ctx context.Context, learnerID, projectID int64) (map[string]int, error) {
	args := m.Called(ctx, learnerID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
