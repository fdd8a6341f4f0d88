package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avelar/memora/internal/models"
)

// ErrVersionConflict signals a lost compare-and-swap on a ReviewCard: the row
// version changed between load and save. Callers should reload and retry.
var ErrVersionConflict = errors.New("repository: review card version conflict")

// LearnerRepository handles learner data access
type LearnerRepository interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	Upsert(ctx context.Context, username string) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	UpdateLastSeen(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error
}

// ProjectRepository handles project data access
type ProjectRepository interface {
	Insert(ctx context.Context, project models.Project) (int64, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ConceptRepository handles concept data access
type ConceptRepository interface {
	Insert(ctx context.Context, concept models.Concept) (int64, error)
	Get(ctx context.Context, id int64) (*models.Concept, error)
	List(ctx context.Context, filter models.ConceptFilter) ([]models.Concept, error)
	Count(ctx context.Context, filter models.ConceptFilter) (int, error)
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles ReviewCard data access. Update is a compare-and-swap
// on the row version; the scheduler core assumes at most one in-flight rating
// per card, and the CAS enforces it across concurrent requests.
type CardRepository interface {
	Insert(ctx context.Context, card models.ReviewCard) (int64, error)
	Get(ctx context.Context, id int64) (*models.ReviewCard, error)
	GetByConcept(ctx context.Context, conceptID, learnerID int64) (*models.ReviewCard, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.ReviewCard, error)
	Update(ctx context.Context, card models.ReviewCard) (models.ReviewCard, error)
}

// RecordRepository handles the append-only review log
type RecordRepository interface {
	Insert(ctx context.Context, record models.ReviewRecord) (int64, error)
	RecentByCard(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error)
}

// MasteryRepository persists the current mastery state per card and the
// aggregated per-state counts dashboards read from.
type MasteryRepository interface {
	Get(ctx context.Context, cardID int64) (*models.MasteryRow, error)
	Upsert(ctx context.Context, row models.MasteryRow) error
	CountsByState(ctx context.Context, learnerID, projectID int64) (map[string]int, error)
	RefreshCache(ctx context.Context, learnerID int64) error
	CachedCounts(ctx context.Context, learnerID, projectID int64) (map[string]int, error)
}
