package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

type masteryRepository struct {
	db *sql.DB
}

// NewMasteryRepository creates a new MasteryRepository implementation
func NewMasteryRepository(db *sql.DB) repository.MasteryRepository {
	return &masteryRepository{db: db}
}

func (r *masteryRepository) Get(ctx context.Context, cardID int64) (*models.MasteryRow, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("getting mastery state: card_id=%d", cardID)

	var row models.MasteryRow
	err := r.db.QueryRowContext(ctx, `
SELECT card_id, state, updated_at
FROM mastery_states
WHERE card_id = ?
`, cardID).Scan(&row.CardID, &row.State, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("mastery state not found: card_id=%d", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get mastery state: %v", err)
		return nil, err
	}
	return &row, nil
}

func (r *masteryRepository) Upsert(ctx context.Context, row models.MasteryRow) error {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("upserting mastery state: card_id=%d, state=%s", row.CardID, row.State)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO mastery_states (card_id, state, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(card_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
`, row.CardID, row.State, row.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert mastery state: %v", err)
	}
	return err
}

// CountsByState aggregates live mastery rows for a learner, optionally scoped
// to one project. Cards without a mastery row do not appear; callers treat the
// gap between counts and total cards as unseen.
func (r *masteryRepository) CountsByState(ctx context.Context, learnerID, projectID int64) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("counting mastery states: learner_id=%d, project_id=%d", learnerID, projectID)

	query := sqlBuilder.Select("ms.state", "COUNT(*)").
		From("mastery_states ms").
		Join("review_cards rc ON rc.id = ms.card_id").
		Where("rc.learner_id = ?", learnerID).
		GroupBy("ms.state")

	if projectID != 0 {
		query = query.Join("concepts c ON c.id = rc.concept_id").
			Where("c.project_id = ?", projectID)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build mastery count query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to count mastery states: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			log.Error("failed to scan mastery count row: %v", err)
			return nil, err
		}
		counts[state] = count
	}
	return counts, rows.Err()
}

// RefreshCache recomputes the per-project state counts for a learner and
// rewrites the mastery_stats_cache rows inside one transaction. Project 0
// holds the learner-wide totals.
func (r *masteryRepository) RefreshCache(ctx context.Context, learnerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("refreshing mastery stats cache: learner_id=%d", learnerID)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx,
			`DELETE FROM mastery_stats_cache WHERE learner_id = ?`, learnerID); err != nil {
			return err
		}
		if _, err := t.ExecContext(ctx, `
INSERT INTO mastery_stats_cache (learner_id, project_id, state, count)
SELECT rc.learner_id, c.project_id, ms.state, COUNT(*)
FROM mastery_states ms
JOIN review_cards rc ON rc.id = ms.card_id
JOIN concepts c ON c.id = rc.concept_id
WHERE rc.learner_id = ?
GROUP BY rc.learner_id, c.project_id, ms.state
`, learnerID); err != nil {
			return err
		}
		_, err := t.ExecContext(ctx, `
INSERT INTO mastery_stats_cache (learner_id, project_id, state, count)
SELECT rc.learner_id, 0, ms.state, COUNT(*)
FROM mastery_states ms
JOIN review_cards rc ON rc.id = ms.card_id
WHERE rc.learner_id = ?
GROUP BY rc.learner_id, ms.state
`, learnerID)
		return err
	})
}

func (r *masteryRepository) CachedCounts(ctx context.Context, learnerID, projectID int64) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("reading cached mastery counts: learner_id=%d, project_id=%d", learnerID, projectID)

	rows, err := r.db.QueryContext(ctx, `
SELECT state, count
FROM mastery_stats_cache
WHERE learner_id = ? AND project_id = ?
`, learnerID, projectID)
	if err != nil {
		log.Error("failed to read cached counts: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			log.Error("failed to scan cached count row: %v", err)
			return nil, err
		}
		counts[state] = count
	}
	return counts, rows.Err()
}
