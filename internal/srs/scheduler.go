package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/avelar/memora/internal/models"
)

// Scheduler maintains ReviewCard forgetting-curve parameters and computes due
// dates. All methods are pure: inputs are taken by value and never mutated.
type Scheduler struct {
	cfg    Config
	factor float64 // retention^(1/decay) - 1, so that R(S, S) = retention
}

// New creates a Scheduler from the given config. Zero-value fields are filled
// with defaults; out-of-range values return ErrInvalidConfig.
func New(cfg Config) (*Scheduler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg:    cfg,
		factor: math.Pow(cfg.TargetRetention, 1.0/cfg.DecayExponent) - 1.0,
	}, nil
}

// Config returns the effective configuration after defaulting.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// NewCard seeds a scheduling record for a concept the learner has just been
// exposed to. The card is immediately reviewable (due now) with reps == 0.
func (s *Scheduler) NewCard(conceptID, learnerID int64, now time.Time) models.ReviewCard {
	return models.ReviewCard{
		ConceptID:  conceptID,
		LearnerID:  learnerID,
		Stability:  s.cfg.SeedStability,
		Difficulty: s.cfg.SeedDifficulty,
		DueAt:      now,
	}
}

// Rate applies one review to the card and returns the updated copy.
//
// On Again, stability strictly contracts (multiplied by the lapse penalty)
// and difficulty rises; on Hard/Good/Easy, stability strictly grows, with the
// gain dampened by difficulty and by current stability and boosted when the
// review came late. The new due date inverts the forgetting curve for the
// target retention against the new stability, so it is always in the future.
func (s *Scheduler) Rate(card models.ReviewCard, rating Rating, now time.Time) (models.ReviewCard, error) {
	if !rating.IsValid() {
		return models.ReviewCard{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if err := s.validateCard(card); err != nil {
		return models.ReviewCard{}, err
	}

	retr := s.retrievabilityAt(card, now)

	if rating == Again {
		card.Lapses++
		card.Stability *= s.cfg.LapsePenalty
		card.Difficulty = clampDifficulty(card.Difficulty + s.cfg.LapseDifficultyStep)
	} else {
		card.Stability *= 1 + s.stabilityGain(card.Difficulty, card.Stability, retr, rating)
		switch rating {
		case Hard:
			card.Difficulty = clampDifficulty(card.Difficulty + s.cfg.HardDifficultyStep)
		case Easy:
			card.Difficulty = clampDifficulty(card.Difficulty - s.cfg.EasyDifficultyStep)
		}
	}

	card.Reps++
	card.LastReviewAt = &now
	card.DueAt = now.Add(s.interval(card.Stability))
	return card, nil
}

// Intervals holds the candidate next interval, in days, for each rating.
type Intervals struct {
	Again float64 `json:"again"`
	Hard  float64 `json:"hard"`
	Good  float64 `json:"good"`
	Easy  float64 `json:"easy"`
}

// PreviewIntervals runs the update formula for every rating on a throwaway
// copy and reports the resulting intervals without persisting any mutation.
// Again <= Hard <= Good <= Easy is typical but not guaranteed for pathological
// inputs; callers must not assert it.
func (s *Scheduler) PreviewIntervals(card models.ReviewCard, now time.Time) (Intervals, error) {
	var out Intervals
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		updated, err := s.Rate(card, r, now)
		if err != nil {
			return Intervals{}, err
		}
		days := updated.DueAt.Sub(now).Hours() / 24.0
		switch r {
		case Again:
			out.Again = days
		case Hard:
			out.Hard = days
		case Good:
			out.Good = days
		case Easy:
			out.Easy = days
		}
	}
	return out, nil
}

// Retrievability returns the predicted probability of successful recall at
// the given time. A fresh or never-reviewed card reports 1.0.
func (s *Scheduler) Retrievability(card models.ReviewCard, now time.Time) float64 {
	return s.retrievabilityAt(card, now)
}

// retrievability computes R(t, S) = (1 + factor*t/S)^decay.
func (s *Scheduler) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+s.factor*elapsedDays/stability, s.cfg.DecayExponent)
}

func (s *Scheduler) retrievabilityAt(card models.ReviewCard, now time.Time) float64 {
	if card.LastReviewAt == nil {
		return 1.0
	}
	elapsed := now.Sub(*card.LastReviewAt).Hours() / 24.0
	if elapsed <= 0 {
		return 1.0
	}
	return s.retrievability(elapsed, card.Stability)
}

// stabilityGain is the fractional stability increase for a successful recall.
// Every factor is strictly positive, so the gain is strictly positive:
//   - growth(rating) rises with recall quality,
//   - (maxD+1-D)/maxD dampens gain for harder concepts,
//   - S^(-dampen) gives diminishing returns as stability grows,
//   - e^((1-R)*bonus) rewards recalling a nearly forgotten card.
func (s *Scheduler) stabilityGain(difficulty, stability, retr float64, rating Rating) float64 {
	return s.growth(rating) *
		(maxDifficulty + 1 - difficulty) / maxDifficulty *
		math.Pow(stability, -s.cfg.StabilityDampen) *
		math.Exp((1-retr)*s.cfg.LatenessBonus)
}

func (s *Scheduler) growth(rating Rating) float64 {
	switch rating {
	case Hard:
		return s.cfg.GrowthHard
	case Easy:
		return s.cfg.GrowthEasy
	default:
		return s.cfg.GrowthGood
	}
}

// interval solves R(t, S) = target retention for t. With factor derived from
// the target, the solution is t = S exactly, clamped to the interval bounds.
func (s *Scheduler) interval(stability float64) time.Duration {
	d := time.Duration(stability * 24 * float64(time.Hour))
	if d < s.cfg.MinInterval {
		return s.cfg.MinInterval
	}
	if d > s.cfg.MaxInterval {
		return s.cfg.MaxInterval
	}
	return d
}

// validateCard rejects malformed cards instead of clamping them, so corrupted
// state is caught at the boundary rather than propagated.
func (s *Scheduler) validateCard(card models.ReviewCard) error {
	if card.Stability <= 0 || math.IsNaN(card.Stability) || math.IsInf(card.Stability, 0) {
		return fmt.Errorf("%w: stability %f must be positive", ErrInvariantViolation, card.Stability)
	}
	if card.Difficulty < minDifficulty || card.Difficulty > maxDifficulty || math.IsNaN(card.Difficulty) {
		return fmt.Errorf("%w: difficulty %f out of range [%g, %g]", ErrInvariantViolation, card.Difficulty, minDifficulty, maxDifficulty)
	}
	if card.Reps < 0 {
		return fmt.Errorf("%w: reps %d must be non-negative", ErrInvariantViolation, card.Reps)
	}
	if card.Lapses < 0 || card.Lapses > card.Reps {
		return fmt.Errorf("%w: lapses %d exceeds reps %d", ErrInvariantViolation, card.Lapses, card.Reps)
	}
	return nil
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, minDifficulty), maxDifficulty)
}
