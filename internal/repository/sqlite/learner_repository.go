package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("getting learner: id=%d", id)

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at, last_seen_at
FROM learners
WHERE id = ?
`, id).Scan(&l.ID, &l.Username, &l.CreatedAt, &l.LastSeenAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("learner not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) Upsert(ctx context.Context, username string) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("upserting learner: username=%s", username)

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
INSERT INTO learners (username)
VALUES (?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING id, username, created_at, last_seen_at
`, username).Scan(&l.ID, &l.Username, &l.CreatedAt, &l.LastSeenAt)
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, err
	}
	log.Debug("learner upserted: id=%d", l.ID)
	return &l, nil
}

func (r *learnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("listing learners")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, created_at, last_seen_at
FROM learners
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, err
	}
	defer rows.Close()

	var learners []models.Learner
	for rows.Next() {
		var l models.Learner
		if err := rows.Scan(&l.ID, &l.Username, &l.CreatedAt, &l.LastSeenAt); err != nil {
			log.Error("failed to scan learner row: %v", err)
			return nil, err
		}
		learners = append(learners, l)
	}
	log.Debug("found %d learners", len(learners))
	return learners, rows.Err()
}

func (r *learnerRepository) UpdateLastSeen(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("updating learner last_seen_at: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE learners SET last_seen_at = ? WHERE id = ?`, t, id)
	if err != nil {
		log.Error("failed to update learner last_seen_at: %v", err)
	}
	return err
}

func (r *learnerRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("deleting learner: id=%d", id)

	// Projects, concepts, cards and records cascade via foreign keys.
	_, err := r.db.ExecContext(ctx, `DELETE FROM learners WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete learner %d: %v", id, err)
	}
	return err
}
