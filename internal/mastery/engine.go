package mastery

import (
	"fmt"

	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/srs"
)

// Config holds the mastery thresholds. Injectable so tests and deployments
// can exercise edge parameterizations without rebuilds.
type Config struct {
	// Ladder cutoffs in days of stability. A card at or above a cutoff earns
	// at least that state. Below FragileCutoff a reviewed card is Exposed.
	FragileCutoff    float64 // zero → 1
	DevelopingCutoff float64 // zero → 4
	SolidCutoff      float64 // zero → 14
	MasteredCutoff   float64 // zero → 45

	// DifficultyShift scales effective cutoffs upward for harder concepts: a
	// concept at maximum difficulty must reach (1 + shift) times the cutoff
	// to earn the same label. Zero → 0.5.
	DifficultyShift float64

	// Misconception signal: at least MisconceptionLapses lapses and a
	// lapses/reps ratio of at least MisconceptionRatio.
	// Zero → 3 and 0.4.
	MisconceptionLapses int
	MisconceptionRatio  float64

	// RecoveryStreak is the run of consecutive successful recalls required
	// to clear a misconception. Zero → 4.
	RecoveryStreak int
}

func (c Config) withDefaults() Config {
	if c.FragileCutoff == 0 {
		c.FragileCutoff = 1
	}
	if c.DevelopingCutoff == 0 {
		c.DevelopingCutoff = 4
	}
	if c.SolidCutoff == 0 {
		c.SolidCutoff = 14
	}
	if c.MasteredCutoff == 0 {
		c.MasteredCutoff = 45
	}
	if c.DifficultyShift == 0 {
		c.DifficultyShift = 0.5
	}
	if c.MisconceptionLapses == 0 {
		c.MisconceptionLapses = 3
	}
	if c.MisconceptionRatio == 0 {
		c.MisconceptionRatio = 0.4
	}
	if c.RecoveryStreak == 0 {
		c.RecoveryStreak = 4
	}
	return c
}

// Engine maps ReviewCard parameters and review history onto the State
// lattice. It never fails on valid input.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine, filling zero config fields with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if cfg.FragileCutoff >= cfg.DevelopingCutoff ||
		cfg.DevelopingCutoff >= cfg.SolidCutoff ||
		cfg.SolidCutoff >= cfg.MasteredCutoff {
		return nil, fmt.Errorf("mastery: ladder cutoffs must be strictly increasing")
	}
	if cfg.DifficultyShift < 0 {
		return nil, fmt.Errorf("mastery: difficulty shift must be non-negative")
	}
	return &Engine{cfg: cfg}, nil
}

// Streak summarizes the tail of a card's review history: how many of the most
// recent ratings were consecutive successes, or consecutive lapses.
type Streak struct {
	Successes int
	Lapses    int
}

// StreakFromHistory computes the trailing streak from ratings ordered oldest
// to newest.
func StreakFromHistory(history []srs.Rating) Streak {
	var st Streak
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Success() {
			if st.Lapses > 0 {
				break
			}
			st.Successes++
		} else {
			if st.Successes > 0 {
				break
			}
			st.Lapses++
		}
	}
	return st
}

// The hysteresis rules form a small finite-state machine with
// history-dependent transitions. They are modeled as an explicit table keyed
// on (current state class, rating class, streak class) so each rule is
// auditable and testable in isolation.

type stateClass int

const (
	curLinear stateClass = iota
	curMisconceived
)

type ratingClass int

const (
	rateAgain ratingClass = iota
	rateHard
	rateGoodEasy
)

type streakClass int

const (
	streakNeutral streakClass = iota
	streakLapseSignal
	streakRecovered
)

type decision int

const (
	holdState decision = iota // keep the current state
	adoptLadder               // take the stability-ladder state, up or down
	climbOnly                 // take the ladder state only if it outranks current
	markMisconceived          // latch the misconceived sentinel
)

type condition struct {
	current stateClass
	rating  ratingClass
	streak  streakClass
}

var transitionTable = map[condition]decision{
	// A misconception is sticky: only a completed recovery streak clears it.
	{curMisconceived, rateAgain, streakNeutral}:        holdState,
	{curMisconceived, rateAgain, streakLapseSignal}:    holdState,
	{curMisconceived, rateAgain, streakRecovered}:      holdState, // unreachable: Again breaks the streak
	{curMisconceived, rateHard, streakNeutral}:         holdState,
	{curMisconceived, rateHard, streakLapseSignal}:     holdState,
	{curMisconceived, rateHard, streakRecovered}:       adoptLadder,
	{curMisconceived, rateGoodEasy, streakNeutral}:     holdState,
	{curMisconceived, rateGoodEasy, streakLapseSignal}: holdState,
	{curMisconceived, rateGoodEasy, streakRecovered}:   adoptLadder,

	// Downgrades require a lapse; repeated lapses trip the misconception
	// flag. A single Hard never downgrades, it only slows the climb.
	{curLinear, rateAgain, streakNeutral}:        adoptLadder,
	{curLinear, rateAgain, streakLapseSignal}:    markMisconceived,
	{curLinear, rateAgain, streakRecovered}:      adoptLadder, // unreachable
	{curLinear, rateHard, streakNeutral}:         climbOnly,
	{curLinear, rateHard, streakLapseSignal}:     climbOnly,
	{curLinear, rateHard, streakRecovered}:       climbOnly,
	{curLinear, rateGoodEasy, streakNeutral}:     climbOnly,
	{curLinear, rateGoodEasy, streakLapseSignal}: climbOnly,
	{curLinear, rateGoodEasy, streakRecovered}:   climbOnly,
}

// Advance applies one review transition: the card has already been updated by
// the scheduler for this rating, and streak reflects the history including it.
func (e *Engine) Advance(current State, card models.ReviewCard, rating srs.Rating, streak Streak) State {
	if card.Reps == 0 {
		return Unseen
	}

	cond := condition{
		current: curLinear,
		rating:  classifyRating(rating),
		streak:  e.classifyStreak(card, streak),
	}
	if current == Misconceived {
		cond.current = curMisconceived
	}

	ladder := e.ladderState(card.Stability, card.Difficulty)
	switch transitionTable[cond] {
	case holdState:
		return current
	case adoptLadder:
		return ladder
	case markMisconceived:
		return Misconceived
	default: // climbOnly
		if !current.Linear() || ladder.Rank() > current.Rank() {
			return ladder
		}
		return current
	}
}

// DeriveState computes the state from scratch for callers without a stored
// previous state: card creation, backfills, recovery after data repair. The
// history carries ratings ordered oldest to newest.
func (e *Engine) DeriveState(card models.ReviewCard, history []srs.Rating) State {
	if card.Reps == 0 {
		return Unseen
	}
	streak := StreakFromHistory(history)
	if e.classifyStreak(card, streak) == streakLapseSignal {
		return Misconceived
	}
	return e.ladderState(card.Stability, card.Difficulty)
}

func classifyRating(r srs.Rating) ratingClass {
	switch r {
	case srs.Again:
		return rateAgain
	case srs.Hard:
		return rateHard
	default:
		return rateGoodEasy
	}
}

// classifyStreak folds the misconception signal and its recovery into one
// class. A completed recovery streak resolves the signal even when the
// lifetime lapse counts would still trip it.
func (e *Engine) classifyStreak(card models.ReviewCard, streak Streak) streakClass {
	if streak.Successes >= e.cfg.RecoveryStreak {
		return streakRecovered
	}
	if card.Lapses >= e.cfg.MisconceptionLapses &&
		float64(card.Lapses) >= e.cfg.MisconceptionRatio*float64(card.Reps) {
		return streakLapseSignal
	}
	return streakNeutral
}

// ladderState thresholds stability against the cutoff ladder. Difficulty
// shifts the effective cutoffs upward: a harder concept's stability number is
// worth less.
func (e *Engine) ladderState(stability, difficulty float64) State {
	shift := 1 + e.cfg.DifficultyShift*(difficulty-1)/9
	switch {
	case stability >= e.cfg.MasteredCutoff*shift:
		return Mastered
	case stability >= e.cfg.SolidCutoff*shift:
		return Solid
	case stability >= e.cfg.DevelopingCutoff*shift:
		return Developing
	case stability >= e.cfg.FragileCutoff*shift:
		return Fragile
	default:
		return Exposed
	}
}
