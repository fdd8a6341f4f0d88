package services

import (
	"context"
	"strings"
	"time"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

// LearnerService manages learner accounts
type LearnerService interface {
	GetOrCreateLearner(ctx context.Context, username string) (*models.Learner, error)
	GetLearner(ctx context.Context, id int64) (*models.Learner, error)
	ListLearners(ctx context.Context) ([]models.Learner, error)
	TouchLearner(ctx context.Context, id int64, now time.Time) error
	DeleteLearner(ctx context.Context, id int64) error
}

type learnerService struct {
	learners repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learners repository.LearnerRepository) LearnerService {
	return &learnerService{learners: learners}
}

func (s *learnerService) GetOrCreateLearner(ctx context.Context, username string) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}

	learner, err := s.learners.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("learner ready: id=%d, username=%s", learner.ID, learner.Username)
	return learner, nil
}

func (s *learnerService) GetLearner(ctx context.Context, id int64) (*models.Learner, error) {
	learner, err := s.learners.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", id)
	}
	return learner, nil
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	learners, err := s.learners.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list learners: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return learners, nil
}

func (s *learnerService) TouchLearner(ctx context.Context, id int64, now time.Time) error {
	if err := s.learners.UpdateLastSeen(ctx, id, now); err != nil {
		logger.FromContext(ctx).Warn("failed to update last_seen_at for learner %d: %v", id, err)
	}
	// Best effort; never surfaces to the caller.
	return nil
}

func (s *learnerService) DeleteLearner(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting learner: id=%d", id)

	learner, err := s.learners.Get(ctx, id)
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return errors.NewInternalError(err)
	}
	if learner == nil {
		return errors.NewNotFoundError("learner", id)
	}
	if err := s.learners.Delete(ctx, id); err != nil {
		log.Error("failed to delete learner: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("learner deleted: id=%d", id)
	return nil
}
