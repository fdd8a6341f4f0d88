package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/mastery"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
	"github.com/avelar/memora/internal/srs"
)

// historyWindow is how many recent reviews feed the streak computation. It
// only needs to cover the recovery streak plus one breaking rating.
const historyWindow = 10

// ReviewOutcome is everything a single rated review produced: the saved card,
// the mastery transition, and the predicted intervals for the next sitting.
type ReviewOutcome struct {
	Card          models.ReviewCard `json:"card"`
	PreviousState mastery.State     `json:"previous_state"`
	State         mastery.State     `json:"state"`
	StateMeta     mastery.Meta      `json:"state_meta"`
	NextIntervals srs.Intervals     `json:"next_intervals"`
}

// CardDetail is a card with its derived review-time numbers.
type CardDetail struct {
	Card           models.ReviewCard `json:"card"`
	State          mastery.State     `json:"state"`
	StateMeta      mastery.Meta      `json:"state_meta"`
	Retrievability float64           `json:"retrievability"`
	Intervals      srs.Intervals     `json:"intervals"`
}

// ReviewService handles the rate-a-card flow and card inspection
type ReviewService interface {
	ReviewCard(ctx context.Context, cardID, learnerID int64, rating srs.Rating, now time.Time) (*ReviewOutcome, error)
	GetCard(ctx context.Context, cardID, learnerID int64, now time.Time) (*CardDetail, error)
}

type reviewService struct {
	cards     repository.CardRepository
	records   repository.RecordRepository
	masteries repository.MasteryRepository
	scheduler *srs.Scheduler
	engine    *mastery.Engine
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	cards repository.CardRepository,
	records repository.RecordRepository,
	masteries repository.MasteryRepository,
	scheduler *srs.Scheduler,
	engine *mastery.Engine,
) ReviewService {
	return &reviewService{
		cards:     cards,
		records:   records,
		masteries: masteries,
		scheduler: scheduler,
		engine:    engine,
	}
}

func (s *reviewService) ReviewCard(ctx context.Context, cardID, learnerID int64, rating srs.Rating, now time.Time) (*ReviewOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: card_id=%d, rating=%s", cardID, rating)

	card, err := s.loadOwnedCard(ctx, cardID, learnerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.scheduler.Rate(*card, rating, now)
	if err != nil {
		return nil, translateSchedulerError(err)
	}

	previous, history, err := s.masteryInputs(ctx, card.ID)
	if err != nil {
		return nil, err
	}
	history = append(history, rating)
	state := s.engine.Advance(previous, updated, rating, mastery.StreakFromHistory(history))

	saved, err := s.cards.Update(ctx, updated)
	if err != nil {
		if stderrors.Is(err, repository.ErrVersionConflict) {
			return nil, errors.NewVersionConflictError(card.ID)
		}
		log.Error("failed to save card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// The scheduler update is the durable outcome; the log and mastery row
	// are derived views, so failures there degrade rather than abort.
	if _, err := s.records.Insert(ctx, models.ReviewRecord{
		CardID:     saved.ID,
		Rating:     rating.String(),
		Stability:  saved.Stability,
		Difficulty: saved.Difficulty,
		ReviewedAt: now,
	}); err != nil {
		log.Warn("failed to append review record: %v", err)
	}
	if err := s.masteries.Upsert(ctx, models.MasteryRow{
		CardID:    saved.ID,
		State:     state.String(),
		UpdatedAt: now,
	}); err != nil {
		log.Warn("failed to save mastery state: %v", err)
	}

	intervals, err := s.scheduler.PreviewIntervals(saved, now)
	if err != nil {
		return nil, translateSchedulerError(err)
	}

	log.Debug("card reviewed: card_id=%d, state=%s -> %s, stability=%.2f",
		saved.ID, previous, state, saved.Stability)
	return &ReviewOutcome{
		Card:          saved,
		PreviousState: previous,
		State:         state,
		StateMeta:     state.Meta(),
		NextIntervals: intervals,
	}, nil
}

func (s *reviewService) GetCard(ctx context.Context, cardID, learnerID int64, now time.Time) (*CardDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card detail: card_id=%d", cardID)

	card, err := s.loadOwnedCard(ctx, cardID, learnerID)
	if err != nil {
		return nil, err
	}

	state, _, err := s.masteryInputs(ctx, card.ID)
	if err != nil {
		return nil, err
	}

	intervals, err := s.scheduler.PreviewIntervals(*card, now)
	if err != nil {
		return nil, translateSchedulerError(err)
	}

	return &CardDetail{
		Card:           *card,
		State:          state,
		StateMeta:      state.Meta(),
		Retrievability: s.scheduler.Retrievability(*card, now),
		Intervals:      intervals,
	}, nil
}

func (s *reviewService) loadOwnedCard(ctx context.Context, cardID, learnerID int64) (*models.ReviewCard, error) {
	log := logger.FromContext(ctx)
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil || card.LearnerID != learnerID {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}

// masteryInputs loads the stored state and the recent rating history for the
// hysteresis rules. A missing mastery row means the card was never reviewed.
func (s *reviewService) masteryInputs(ctx context.Context, cardID int64) (mastery.State, []srs.Rating, error) {
	log := logger.FromContext(ctx)

	state := mastery.Unseen
	row, err := s.masteries.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to load mastery state: %v", err)
		return 0, nil, errors.NewInternalError(err)
	}
	if row != nil {
		state, err = mastery.ParseState(row.State)
		if err != nil {
			log.Error("stored mastery state is corrupt: %v", err)
			return 0, nil, errors.NewInternalError(err)
		}
	}

	recent, err := s.records.RecentByCard(ctx, cardID, historyWindow)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return 0, nil, errors.NewInternalError(err)
	}

	// RecentByCard returns newest first; the streak wants oldest to newest.
	history := make([]srs.Rating, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		r, err := srs.ParseRating(recent[i].Rating)
		if err != nil {
			log.Warn("skipping corrupt review record %d: %v", recent[i].ID, err)
			continue
		}
		history = append(history, r)
	}
	return state, history, nil
}

func translateSchedulerError(err error) error {
	switch {
	case stderrors.Is(err, srs.ErrInvalidRating):
		return errors.NewInvalidRatingError(err)
	case stderrors.Is(err, srs.ErrInvariantViolation):
		return errors.NewInvariantViolationError(err)
	default:
		return errors.NewInternalError(err)
	}
}
