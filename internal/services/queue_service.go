package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
	"github.com/avelar/memora/internal/review"
)

// defaultSessionSize caps how many cards one sitting plans when the caller
// does not ask for a specific limit.
const defaultSessionSize = 20

// QueueService builds the due queue and drives review sessions
type QueueService interface {
	DueCards(ctx context.Context, learnerID, projectID int64, limit int, now time.Time) ([]models.ReviewCard, error)
	StartSession(ctx context.Context, learnerID, projectID int64, limit int, now time.Time) (*review.Session, error)
	GetSession(ctx context.Context, sessionID string) (*review.Session, error)
	AdvanceSession(ctx context.Context, sessionID string) (*review.Session, error)
	AbandonSession(ctx context.Context, sessionID string)
}

type queueService struct {
	cards    repository.CardRepository
	sessions *review.Manager
}

// NewQueueService creates a new QueueService
func NewQueueService(cards repository.CardRepository, sessions *review.Manager) QueueService {
	return &queueService{cards: cards, sessions: sessions}
}

func (s *queueService) DueCards(ctx context.Context, learnerID, projectID int64, limit int, now time.Time) ([]models.ReviewCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building due queue: learner_id=%d, project_id=%d", learnerID, projectID)

	if limit <= 0 {
		limit = defaultSessionSize
	}

	due, err := s.cards.List(ctx, models.CardFilter{
		LearnerID: learnerID,
		ProjectID: projectID,
		DueBefore: &now,
		Limit:     limit,
	})
	if err != nil {
		log.Error("failed to load due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	ordered := review.OrderDue(due, now)
	log.Debug("due queue built: %d cards", len(ordered))
	return ordered, nil
}

func (s *queueService) StartSession(ctx context.Context, learnerID, projectID int64, limit int, now time.Time) (*review.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: learner_id=%d, project_id=%d", learnerID, projectID)

	due, err := s.DueCards(ctx, learnerID, projectID, limit, now)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Start(learnerID, projectID, due, now)
	if err != nil {
		if stderrors.Is(err, review.ErrEmptyPlan) {
			return nil, errors.NewBadRequestError("no cards are due for review")
		}
		log.Error("failed to start session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("session started: id=%s, plan=%d cards", sess.ID, len(sess.Plan))
	return sess, nil
}

func (s *queueService) GetSession(ctx context.Context, sessionID string) (*review.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, translateSessionError(sessionID, err)
	}
	return sess, nil
}

func (s *queueService) AdvanceSession(ctx context.Context, sessionID string) (*review.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("advancing session: id=%s", sessionID)

	sess, err := s.sessions.Advance(sessionID)
	if err != nil {
		return nil, translateSessionError(sessionID, err)
	}
	if sess.State == review.Completed {
		log.Info("session completed: id=%s", sessionID)
	}
	return sess, nil
}

func (s *queueService) AbandonSession(ctx context.Context, sessionID string) {
	logger.FromContext(ctx).Debug("abandoning session: id=%s", sessionID)
	s.sessions.Abandon(sessionID)
}

func translateSessionError(sessionID string, err error) error {
	switch {
	case stderrors.Is(err, review.ErrSessionNotFound):
		return errors.NewNotFoundError("session", sessionID)
	case stderrors.Is(err, review.ErrSessionCompleted):
		return errors.NewBadRequestError("session is already completed")
	default:
		return errors.NewInternalError(err)
	}
}
