package models

import "time"

type Learner struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at"`
}

type Project struct {
	ID        int64     `json:"id"`
	LearnerID int64     `json:"learner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Concept struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type ConceptFilter struct {
	ProjectID int64
	LearnerID int64
	Limit     int
	Offset    int
}
