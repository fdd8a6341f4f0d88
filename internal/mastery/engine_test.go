package mastery_test

import (
	"testing"
	"time"

	"github.com/avelar/memora/internal/mastery"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *mastery.Engine {
	e, err := mastery.NewEngine(mastery.Config{})
	require.NoError(t, err)
	return e
}

// card builds a reviewed card with difficulty 1 so the ladder cutoffs apply
// without the difficulty shift.
func card(stability float64, reps, lapses int) models.ReviewCard {
	now := time.Now()
	return models.ReviewCard{
		Stability:    stability,
		Difficulty:   1,
		Reps:         reps,
		Lapses:       lapses,
		LastReviewAt: &now,
	}
}

func TestNewEngine_RejectsBadCutoffs(t *testing.T) {
	_, err := mastery.NewEngine(mastery.Config{FragileCutoff: 5, DevelopingCutoff: 4})
	assert.Error(t, err)

	_, err = mastery.NewEngine(mastery.Config{DifficultyShift: -1})
	assert.Error(t, err)
}

func TestDeriveState_Ladder(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		stability float64
		want      mastery.State
	}{
		{0.5, mastery.Exposed},
		{1, mastery.Fragile},
		{3.9, mastery.Fragile},
		{4, mastery.Developing},
		{14, mastery.Solid},
		{44.9, mastery.Solid},
		{45, mastery.Mastered},
		{500, mastery.Mastered},
	}
	for _, tt := range tests {
		got := e.DeriveState(card(tt.stability, 3, 0), []srs.Rating{srs.Good, srs.Good, srs.Good})
		assert.Equal(t, tt.want, got, "stability %.1f", tt.stability)
	}
}

func TestDeriveState_UnseenBeforeFirstReview(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, mastery.Unseen, e.DeriveState(models.ReviewCard{Stability: 100, Difficulty: 1}, nil))
}

func TestDeriveState_DifficultyShiftRaisesBar(t *testing.T) {
	e := newEngine(t)

	easyCard := card(45, 5, 0)
	hardCard := card(45, 5, 0)
	hardCard.Difficulty = 10

	history := []srs.Rating{srs.Good, srs.Good}
	assert.Equal(t, mastery.Mastered, e.DeriveState(easyCard, history))
	// At max difficulty the mastered cutoff shifts to 45 * 1.5 = 67.5 days.
	assert.Equal(t, mastery.Solid, e.DeriveState(hardCard, history))
}

func TestAdvance_HardNeverDowngrades(t *testing.T) {
	e := newEngine(t)

	// Stability has slipped below the solid cutoff, but the review was a
	// success: the state holds rather than falling.
	c := card(10, 8, 0)
	got := e.Advance(mastery.Solid, c, srs.Hard, mastery.Streak{Successes: 3})
	assert.Equal(t, mastery.Solid, got)
}

func TestAdvance_SuccessClimbs(t *testing.T) {
	e := newEngine(t)

	c := card(16, 6, 0)
	got := e.Advance(mastery.Developing, c, srs.Good, mastery.Streak{Successes: 4})
	assert.Equal(t, mastery.Solid, got)
}

func TestAdvance_AgainDowngradesViaLadder(t *testing.T) {
	e := newEngine(t)

	// One isolated lapse drops the state to wherever stability now points,
	// without tripping the misconception flag.
	c := card(2, 10, 1)
	got := e.Advance(mastery.Solid, c, srs.Again, mastery.Streak{Lapses: 1})
	assert.Equal(t, mastery.Fragile, got)
}

func TestAdvance_RepeatedLapsesMarkMisconceived(t *testing.T) {
	e := newEngine(t)

	// 3 lapses out of 6 reps: count and ratio thresholds both met.
	c := card(0.8, 6, 3)
	got := e.Advance(mastery.Fragile, c, srs.Again, mastery.Streak{Lapses: 2})
	assert.Equal(t, mastery.Misconceived, got)
}

func TestAdvance_MisconceivedIsSticky(t *testing.T) {
	e := newEngine(t)

	c := card(5, 8, 3)

	// Scattered successes are not enough to clear the flag.
	got := e.Advance(mastery.Misconceived, c, srs.Good, mastery.Streak{Successes: 2})
	assert.Equal(t, mastery.Misconceived, got)

	got = e.Advance(mastery.Misconceived, c, srs.Hard, mastery.Streak{Successes: 1})
	assert.Equal(t, mastery.Misconceived, got)

	got = e.Advance(mastery.Misconceived, c, srs.Again, mastery.Streak{Lapses: 1})
	assert.Equal(t, mastery.Misconceived, got)
}

func TestAdvance_RecoveryStreakClearsMisconception(t *testing.T) {
	e := newEngine(t)

	// Four consecutive successes: the flag clears and the state comes from
	// the stability ladder, even though lifetime lapse counts still look bad.
	c := card(5, 12, 5)
	got := e.Advance(mastery.Misconceived, c, srs.Good, mastery.Streak{Successes: 4})
	assert.Equal(t, mastery.Developing, got)
}

func TestStreakFromHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []srs.Rating
		want    mastery.Streak
	}{
		{"empty", nil, mastery.Streak{}},
		{"all successes", []srs.Rating{srs.Good, srs.Easy, srs.Hard}, mastery.Streak{Successes: 3}},
		{"trailing successes after lapse", []srs.Rating{srs.Again, srs.Good, srs.Good}, mastery.Streak{Successes: 2}},
		{"trailing lapses", []srs.Rating{srs.Good, srs.Again, srs.Again}, mastery.Streak{Lapses: 2}},
		{"lapse breaks success run", []srs.Rating{srs.Good, srs.Good, srs.Again}, mastery.Streak{Lapses: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mastery.StreakFromHistory(tt.history))
		})
	}
}

func TestDeriveState_MisconceptionSignal(t *testing.T) {
	e := newEngine(t)

	// Heavy lapse history without a recovery streak derives Misconceived.
	c := card(2, 10, 4)
	got := e.DeriveState(c, []srs.Rating{srs.Again, srs.Good, srs.Again})
	assert.Equal(t, mastery.Misconceived, got)

	// The same card after a full recovery streak derives from the ladder.
	got = e.DeriveState(c, []srs.Rating{srs.Again, srs.Good, srs.Good, srs.Good, srs.Good})
	assert.Equal(t, mastery.Fragile, got)
}
