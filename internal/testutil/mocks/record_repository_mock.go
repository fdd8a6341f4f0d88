package mocks

import (
	"context"

	"github.com/avelar/memora/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock implementation of repository.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Insert(ctx context.Context, record models.ReviewRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) RecentByCard(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error) {
	args := m.Called(ctx, cardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewRecord), args.Error(1)
}
