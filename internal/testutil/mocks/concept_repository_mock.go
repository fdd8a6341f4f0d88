package mocks

import (
	"context"

	"github.com/avelar/memora/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockConceptRepository is a mock implementation of repository.ConceptRepository
type MockConceptRepository struct {
	mock.Mock
}

func (m *MockConceptRepository) Insert(ctx context.Context, concept models.Concept) (int64, error) {
	args := m.Called(ctx, concept)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConceptRepository) Get(ctx context.Context, id int64) (*models.Concept, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Concept), args.Error(1)
}

func (m *MockConceptRepository) List(ctx context.Context, filter models.ConceptFilter) ([]models.Concept, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Concept), args.Error(1)
}

func (m *MockConceptRepository) Count(ctx context.Context, filter models.ConceptFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockConceptRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
