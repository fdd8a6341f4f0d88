package models

import "time"

// ReviewCard is the per-(learner, concept) scheduling record. Stability and
// difficulty are owned by the scheduler; Version backs optimistic concurrency
// on saves, since two concurrent reviews of the same card computed from a
// stale snapshot would silently overwrite each other.
type ReviewCard struct {
	ID           int64      `json:"id"`
	ConceptID    int64      `json:"concept_id"`
	LearnerID    int64      `json:"learner_id"`
	Stability    float64    `json:"stability"`  // days
	Difficulty   float64    `json:"difficulty"` // 1..10
	Reps         int        `json:"reps"`
	Lapses       int        `json:"lapses"`
	LastReviewAt *time.Time `json:"last_review_at"` // nil before first review
	DueAt        time.Time  `json:"due_at"`
	Version      int64      `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CardFilter narrows card queries to a learner and optionally one project.
type CardFilter struct {
	LearnerID int64
	ProjectID int64 // 0 means all projects
	DueBefore *time.Time
	Limit     int
}

// ReviewRecord is one rated review, appended after every scheduler update.
type ReviewRecord struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Rating     string    `json:"rating"`
	Stability  float64   `json:"stability"`
	Difficulty float64   `json:"difficulty"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// MasteryRow is the persisted mastery state for a card. The engine needs the
// previous state to apply its hysteresis rules, so the current label is stored
// rather than rederived from scratch on every read.
type MasteryRow struct {
	CardID    int64     `json:"card_id"`
	State     string    `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}
