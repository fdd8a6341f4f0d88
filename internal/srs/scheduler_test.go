package srs_test

import (
	"testing"
	"time"

	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T) *srs.Scheduler {
	s, err := srs.New(srs.Config{})
	require.NoError(t, err)
	return s
}

func TestNewCard(t *testing.T) {
	s := newScheduler(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	card := s.NewCard(42, 7, now)

	assert.Equal(t, int64(42), card.ConceptID)
	assert.Equal(t, int64(7), card.LearnerID)
	assert.Equal(t, 0.5, card.Stability, "seed stability")
	assert.Equal(t, 5.0, card.Difficulty, "seed difficulty")
	assert.Equal(t, 0, card.Reps)
	assert.Equal(t, 0, card.Lapses)
	assert.Nil(t, card.LastReviewAt, "never reviewed")
	assert.Equal(t, now, card.DueAt, "immediately reviewable")
}

func TestRate_InvalidRating(t *testing.T) {
	s := newScheduler(t)
	card := s.NewCard(1, 1, time.Now())

	_, err := s.Rate(card, srs.Rating(0), time.Now())
	assert.ErrorIs(t, err, srs.ErrInvalidRating)

	_, err = s.Rate(card, srs.Rating(5), time.Now())
	assert.ErrorIs(t, err, srs.ErrInvalidRating)
}

func TestRate_SuccessGrowsStability(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	card := s.NewCard(1, 1, now)

	for _, rating := range []srs.Rating{srs.Hard, srs.Good, srs.Easy} {
		updated, err := s.Rate(card, rating, now)
		require.NoError(t, err)

		assert.Greater(t, updated.Stability, card.Stability,
			"stability must strictly grow on %s", rating)
		assert.Equal(t, card.Reps+1, updated.Reps)
		assert.Equal(t, card.Lapses, updated.Lapses)
		require.NotNil(t, updated.LastReviewAt)
		assert.Equal(t, now, *updated.LastReviewAt)
		assert.True(t, updated.DueAt.After(now), "due date must be in the future")
	}
}

func TestRate_AgainContractsStability(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	card := s.NewCard(1, 1, now)
	card.Stability = 20
	card.Reps = 5

	updated, err := s.Rate(card, srs.Again, now)
	require.NoError(t, err)

	assert.Less(t, updated.Stability, card.Stability, "stability must contract on Again")
	assert.Greater(t, updated.Stability, 0.0, "stability never resets to zero")
	assert.Equal(t, card.Lapses+1, updated.Lapses)
	assert.Greater(t, updated.Difficulty, card.Difficulty, "difficulty rises on lapse")
	assert.True(t, updated.DueAt.After(now), "even a lapsed card is due in the future")
}

func TestRate_RatingOrdering(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	card := s.NewCard(1, 1, now)
	card.Stability = 5
	card.Reps = 3

	hard, err := s.Rate(card, srs.Hard, now)
	require.NoError(t, err)
	good, err := s.Rate(card, srs.Good, now)
	require.NoError(t, err)
	easy, err := s.Rate(card, srs.Easy, now)
	require.NoError(t, err)

	assert.Less(t, hard.Stability, good.Stability, "Hard gains less than Good")
	assert.Less(t, good.Stability, easy.Stability, "Good gains less than Easy")
}

func TestRate_DifficultyClamped(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	card := s.NewCard(1, 1, now)

	// Hammer the card with lapses; difficulty must stay within bounds.
	card.Difficulty = 9.8
	for i := 0; i < 5; i++ {
		var err error
		card, err = s.Rate(card, srs.Again, now)
		require.NoError(t, err)
		assert.LessOrEqual(t, card.Difficulty, 10.0)
	}

	card.Difficulty = 1.1
	for i := 0; i < 5; i++ {
		var err error
		card, err = s.Rate(card, srs.Easy, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, card.Difficulty, 1.0)
	}
}

func TestRate_LateReviewEarnsBonus(t *testing.T) {
	s := newScheduler(t)
	reviewed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	card := s.NewCard(1, 1, reviewed)
	card.Stability = 10
	card.Reps = 4
	card.LastReviewAt = &reviewed
	card.DueAt = reviewed.AddDate(0, 0, 10)

	onTime, err := s.Rate(card, srs.Good, reviewed.AddDate(0, 0, 10))
	require.NoError(t, err)
	late, err := s.Rate(card, srs.Good, reviewed.AddDate(0, 0, 40))
	require.NoError(t, err)

	assert.Greater(t, late.Stability, onTime.Stability,
		"recalling a nearly forgotten card earns a larger gain")
}

func TestRate_LongRunInvariants(t *testing.T) {
	s := newScheduler(t)
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	card := s.NewCard(1, 1, now)

	// Deterministic mixed history: every third review is a lapse.
	ratings := []srs.Rating{srs.Good, srs.Easy, srs.Again, srs.Hard, srs.Good, srs.Again}
	for i := 0; i < 60; i++ {
		rating := ratings[i%len(ratings)]
		updated, err := s.Rate(card, rating, now)
		require.NoError(t, err)

		assert.Greater(t, updated.Stability, 0.0)
		assert.GreaterOrEqual(t, updated.Difficulty, 1.0)
		assert.LessOrEqual(t, updated.Difficulty, 10.0)
		assert.Equal(t, card.Reps+1, updated.Reps)
		assert.LessOrEqual(t, updated.Lapses, updated.Reps)
		assert.True(t, updated.DueAt.After(now))

		if rating.Success() {
			assert.Greater(t, updated.Stability, card.Stability)
		} else {
			assert.Less(t, updated.Stability, card.Stability)
		}

		card = updated
		now = card.DueAt
	}
}

func TestRate_MinIntervalClamp(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	card := s.NewCard(1, 1, now)
	card.Stability = 0.001
	card.Reps = 2
	card.Lapses = 2

	updated, err := s.Rate(card, srs.Again, now)
	require.NoError(t, err)

	// Even a collapsed stability never schedules below the minimum interval.
	assert.True(t, !updated.DueAt.Before(now.Add(10*time.Minute)))
}

func TestRate_RejectsCorruptCards(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*models.ReviewCard)
	}{
		{"zero stability", func(c *models.ReviewCard) { c.Stability = 0 }},
		{"negative stability", func(c *models.ReviewCard) { c.Stability = -1 }},
		{"difficulty below range", func(c *models.ReviewCard) { c.Difficulty = 0.5 }},
		{"difficulty above range", func(c *models.ReviewCard) { c.Difficulty = 11 }},
		{"negative reps", func(c *models.ReviewCard) { c.Reps = -1 }},
		{"lapses exceed reps", func(c *models.ReviewCard) { c.Reps = 2; c.Lapses = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := s.NewCard(1, 1, now)
			tt.mutate(&card)

			_, err := s.Rate(card, srs.Good, now)
			assert.ErrorIs(t, err, srs.ErrInvariantViolation)
		})
	}
}

func TestPreviewIntervals(t *testing.T) {
	s := newScheduler(t)
	now := time.Now()
	card := s.NewCard(1, 1, now)
	card.Stability = 8
	card.Reps = 4

	before := card
	first, err := s.PreviewIntervals(card, now)
	require.NoError(t, err)
	second, err := s.PreviewIntervals(card, now)
	require.NoError(t, err)

	assert.Equal(t, before, card, "preview must not mutate the card")
	assert.Equal(t, first, second, "preview must be deterministic")
	assert.Less(t, first.Again, first.Good, "a lapse schedules sooner than a success")
	assert.Greater(t, first.Easy, first.Hard)
}

func TestRetrievability(t *testing.T) {
	s := newScheduler(t)
	reviewed := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	card := s.NewCard(1, 1, reviewed)
	assert.Equal(t, 1.0, s.Retrievability(card, reviewed), "unreviewed card reports full recall")

	card.Stability = 10
	card.Reps = 1
	card.LastReviewAt = &reviewed

	assert.Equal(t, 1.0, s.Retrievability(card, reviewed), "no elapsed time means no decay")

	// At exactly one stability of elapsed time, recall sits at the target.
	atStability := s.Retrievability(card, reviewed.AddDate(0, 0, 10))
	assert.InDelta(t, 0.9, atStability, 1e-9)

	later := s.Retrievability(card, reviewed.AddDate(0, 0, 30))
	assert.Less(t, later, atStability, "retrievability decays monotonically")
	assert.Greater(t, later, 0.0)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  srs.Config
	}{
		{"positive decay", srs.Config{DecayExponent: 0.5}},
		{"retention too high", srs.Config{TargetRetention: 1.5}},
		{"negative seed stability", srs.Config{SeedStability: -1}},
		{"lapse penalty above one", srs.Config{LapsePenalty: 1.5}},
		{"max below min interval", srs.Config{MinInterval: time.Hour, MaxInterval: time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srs.New(tt.cfg)
			assert.ErrorIs(t, err, srs.ErrInvalidConfig)
		})
	}
}
