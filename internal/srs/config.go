package srs

import (
	"fmt"
	"time"
)

// Config holds every tunable constant of the forgetting-curve model. The
// constants are injectable rather than package-level so that deployments can
// recalibrate and tests can exercise edge parameterizations deterministically.
// Zero values fall back to the defaults below.
type Config struct {
	// DecayExponent is the (negative) exponent of the power-law forgetting
	// curve R(t,S) = (1 + factor*t/S)^decay. Zero → -0.5.
	DecayExponent float64

	// TargetRetention is the retrievability the next due date aims for,
	// in (0, 1). Zero → 0.9.
	TargetRetention float64

	// SeedStability is the stability assigned to a freshly created card,
	// in days. Zero → 0.5.
	SeedStability float64

	// SeedDifficulty is the difficulty assigned to a freshly created card.
	// Zero → 5.0.
	SeedDifficulty float64

	// LapsePenalty multiplies stability on Again, in (0, 1). Prior learning
	// retains partial benefit; memory never resets to the seed. Zero → 0.35.
	LapsePenalty float64

	// Growth factors scale stability gain per successful rating.
	// Zero → 0.35 / 0.7 / 1.1 for Hard / Good / Easy.
	GrowthHard float64
	GrowthGood float64
	GrowthEasy float64

	// StabilityDampen is the exponent of the diminishing-returns term
	// S^(-dampen): a well-known concept gains proportionally less from one
	// more correct review. Zero → 0.25.
	StabilityDampen float64

	// LatenessBonus scales the extra stability gain for recalling a card
	// whose retrievability had already dropped. Zero → 1.4.
	LatenessBonus float64

	// Difficulty nudges, all applied within [1, 10].
	// Zero → +0.8 on Again, +0.15 on Hard, -0.15 on Easy.
	LapseDifficultyStep float64
	HardDifficultyStep  float64
	EasyDifficultyStep  float64

	// Interval clamps for the computed due offset.
	// Zero → 10 minutes / 10 years.
	MinInterval time.Duration
	MaxInterval time.Duration
}

// Difficulty bounds are structural, not tunable: the damping term
// (maxDifficulty + 1 - D) / maxDifficulty must stay positive.
const (
	minDifficulty = 1.0
	maxDifficulty = 10.0
)

func (c Config) withDefaults() Config {
	if c.DecayExponent == 0 {
		c.DecayExponent = -0.5
	}
	if c.TargetRetention == 0 {
		c.TargetRetention = 0.9
	}
	if c.SeedStability == 0 {
		c.SeedStability = 0.5
	}
	if c.SeedDifficulty == 0 {
		c.SeedDifficulty = 5.0
	}
	if c.LapsePenalty == 0 {
		c.LapsePenalty = 0.35
	}
	if c.GrowthHard == 0 {
		c.GrowthHard = 0.35
	}
	if c.GrowthGood == 0 {
		c.GrowthGood = 0.7
	}
	if c.GrowthEasy == 0 {
		c.GrowthEasy = 1.1
	}
	if c.StabilityDampen == 0 {
		c.StabilityDampen = 0.25
	}
	if c.LatenessBonus == 0 {
		c.LatenessBonus = 1.4
	}
	if c.LapseDifficultyStep == 0 {
		c.LapseDifficultyStep = 0.8
	}
	if c.HardDifficultyStep == 0 {
		c.HardDifficultyStep = 0.15
	}
	if c.EasyDifficultyStep == 0 {
		c.EasyDifficultyStep = 0.15
	}
	if c.MinInterval == 0 {
		c.MinInterval = 10 * time.Minute
	}
	if c.MaxInterval == 0 {
		c.MaxInterval = 10 * 365 * 24 * time.Hour
	}
	return c
}

func (c Config) validate() error {
	if c.DecayExponent >= 0 {
		return fmt.Errorf("%w: decay exponent %f must be negative", ErrInvalidConfig, c.DecayExponent)
	}
	if c.TargetRetention <= 0 || c.TargetRetention >= 1 {
		return fmt.Errorf("%w: target retention %f out of range (0, 1)", ErrInvalidConfig, c.TargetRetention)
	}
	if c.SeedStability <= 0 {
		return fmt.Errorf("%w: seed stability %f must be positive", ErrInvalidConfig, c.SeedStability)
	}
	if c.SeedDifficulty < minDifficulty || c.SeedDifficulty > maxDifficulty {
		return fmt.Errorf("%w: seed difficulty %f out of range [%g, %g]", ErrInvalidConfig, c.SeedDifficulty, minDifficulty, maxDifficulty)
	}
	if c.LapsePenalty <= 0 || c.LapsePenalty >= 1 {
		return fmt.Errorf("%w: lapse penalty %f out of range (0, 1)", ErrInvalidConfig, c.LapsePenalty)
	}
	if c.GrowthHard <= 0 || c.GrowthGood <= 0 || c.GrowthEasy <= 0 {
		return fmt.Errorf("%w: growth factors must be positive", ErrInvalidConfig)
	}
	if c.StabilityDampen < 0 {
		return fmt.Errorf("%w: stability dampen %f must be non-negative", ErrInvalidConfig, c.StabilityDampen)
	}
	if c.LatenessBonus < 0 {
		return fmt.Errorf("%w: lateness bonus %f must be non-negative", ErrInvalidConfig, c.LatenessBonus)
	}
	if c.MinInterval <= 0 || c.MaxInterval < c.MinInterval {
		return fmt.Errorf("%w: interval bounds [%v, %v] invalid", ErrInvalidConfig, c.MinInterval, c.MaxInterval)
	}
	return nil
}
