package review_test

import (
	"testing"
	"time"

	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(n int) []models.ReviewCard {
	cards := make([]models.ReviewCard, n)
	for i := range cards {
		cards[i] = models.ReviewCard{ID: int64(i + 1), Stability: 1, Reps: 1}
	}
	return cards
}

func TestManager_StartEmptyPlan(t *testing.T) {
	m := review.NewManager()
	_, err := m.Start(1, 0, nil, time.Now())
	assert.ErrorIs(t, err, review.ErrEmptyPlan)
}

func TestManager_StartSnapshotsPlan(t *testing.T) {
	m := review.NewManager()
	cards := plan(5)

	sess, err := m.Start(1, 0, cards, time.Now())
	require.NoError(t, err)
	assert.Equal(t, review.InProgress, sess.State)
	assert.Len(t, sess.Plan, 5)

	// A card becoming due after the sitting started must not grow the plan.
	cards[0].ID = 999
	cards = append(cards, models.ReviewCard{ID: 6})

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Plan, 5)
	assert.Equal(t, int64(1), got.Plan[0].ID)
}

func TestManager_AdvanceThroughPlan(t *testing.T) {
	m := review.NewManager()
	sess, err := m.Start(1, 0, plan(3), time.Now())
	require.NoError(t, err)

	require.NotNil(t, sess.Current())
	assert.Equal(t, int64(1), sess.Current().ID)
	assert.Equal(t, 3, sess.Remaining())

	sess, err = m.Advance(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sess.Current().ID)
	assert.Equal(t, 2, sess.Remaining())

	sess, err = m.Advance(sess.ID)
	require.NoError(t, err)
	sess, err = m.Advance(sess.ID)
	require.NoError(t, err)

	assert.Equal(t, review.Completed, sess.State)
	assert.Nil(t, sess.Current())
	assert.Equal(t, 0, sess.Remaining())

	_, err = m.Advance(sess.ID)
	assert.ErrorIs(t, err, review.ErrSessionCompleted)
}

func TestManager_GetUnknownSession(t *testing.T) {
	m := review.NewManager()
	_, err := m.Get("nope")
	assert.ErrorIs(t, err, review.ErrSessionNotFound)
}

func TestManager_StartReplacesPreviousSession(t *testing.T) {
	m := review.NewManager()
	first, err := m.Start(1, 0, plan(2), time.Now())
	require.NoError(t, err)

	second, err := m.Start(1, 0, plan(4), time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = m.Get(first.ID)
	assert.ErrorIs(t, err, review.ErrSessionNotFound, "one active sitting per learner")

	got, err := m.Get(second.ID)
	require.NoError(t, err)
	assert.Len(t, got.Plan, 4)
}

func TestManager_SessionsAreIndependentPerLearner(t *testing.T) {
	m := review.NewManager()
	a, err := m.Start(1, 0, plan(2), time.Now())
	require.NoError(t, err)
	b, err := m.Start(2, 0, plan(3), time.Now())
	require.NoError(t, err)

	gotA, err := m.Get(a.ID)
	require.NoError(t, err)
	gotB, err := m.Get(b.ID)
	require.NoError(t, err)
	assert.Len(t, gotA.Plan, 2)
	assert.Len(t, gotB.Plan, 3)
}

func TestManager_Abandon(t *testing.T) {
	m := review.NewManager()
	sess, err := m.Start(1, 0, plan(2), time.Now())
	require.NoError(t, err)

	m.Abandon(sess.ID)
	_, err = m.Get(sess.ID)
	assert.ErrorIs(t, err, review.ErrSessionNotFound)

	// Abandoning twice is harmless.
	m.Abandon(sess.ID)

	// The learner can start a fresh sitting afterwards.
	_, err = m.Start(1, 0, plan(1), time.Now())
	assert.NoError(t, err)
}

func TestManager_SnapshotIsolation(t *testing.T) {
	m := review.NewManager()
	sess, err := m.Start(1, 0, plan(2), time.Now())
	require.NoError(t, err)

	// Mutating the returned copy must not affect the stored session.
	sess.Plan[0].ID = 777
	sess.Cursor = 99

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Plan[0].ID)
	assert.Equal(t, 0, got.Cursor)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "not_started", review.NotStarted.String())
	assert.Equal(t, "in_progress", review.InProgress.String())
	assert.Equal(t, "completed", review.Completed.String())
	assert.Equal(t, "unknown", review.SessionState(9).String())
}
