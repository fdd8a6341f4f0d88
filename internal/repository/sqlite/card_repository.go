package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, concept_id, learner_id, stability, difficulty, reps, lapses, last_review_at, due_at, version, created_at`

func scanCard(row interface{ Scan(...any) error }) (models.ReviewCard, error) {
	var c models.ReviewCard
	err := row.Scan(&c.ID, &c.ConceptID, &c.LearnerID, &c.Stability, &c.Difficulty,
		&c.Reps, &c.Lapses, &c.LastReviewAt, &c.DueAt, &c.Version, &c.CreatedAt)
	return c, err
}

func (r *cardRepository) Insert(ctx context.Context, card models.ReviewCard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: concept_id=%d, learner_id=%d", card.ConceptID, card.LearnerID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_cards (concept_id, learner_id, stability, difficulty, reps, lapses, last_review_at, due_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, card.ConceptID, card.LearnerID, card.Stability, card.Difficulty,
		card.Reps, card.Lapses, card.LastReviewAt, card.DueAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	c, err := scanCard(r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM review_cards WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) GetByConcept(ctx context.Context, conceptID, learnerID int64) (*models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: concept_id=%d, learner_id=%d", conceptID, learnerID)

	c, err := scanCard(r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM review_cards WHERE concept_id = ? AND learner_id = ?`,
		conceptID, learnerID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: concept_id=%d, learner_id=%d", conceptID, learnerID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: learner_id=%d, project_id=%d", filter.LearnerID, filter.ProjectID)

	query := sqlBuilder.Select(
		"rc.id", "rc.concept_id", "rc.learner_id", "rc.stability", "rc.difficulty",
		"rc.reps", "rc.lapses", "rc.last_review_at", "rc.due_at", "rc.version", "rc.created_at").
		From("review_cards rc").
		Where(squirrel.Eq{"rc.learner_id": filter.LearnerID})

	if filter.ProjectID != 0 {
		query = query.Join("concepts c ON c.id = rc.concept_id").
			Where(squirrel.Eq{"c.project_id": filter.ProjectID})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"rc.due_at": *filter.DueBefore})
	}

	query = query.OrderBy("rc.due_at ASC", "rc.id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.ReviewCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

// Update saves scheduler output with a compare-and-swap on the row version.
// The card passed in carries the version it was loaded at; if the row moved on
// since then, no rows match and ErrVersionConflict is returned.
func (r *cardRepository) Update(ctx context.Context, card models.ReviewCard) (models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d, version=%d", card.ID, card.Version)

	res, err := r.db.ExecContext(ctx, `
UPDATE review_cards
SET stability = ?, difficulty = ?, reps = ?, lapses = ?, last_review_at = ?, due_at = ?, version = version + 1
WHERE id = ? AND version = ?
`, card.Stability, card.Difficulty, card.Reps, card.Lapses,
		card.LastReviewAt, card.DueAt, card.ID, card.Version)
	if err != nil {
		log.Error("failed to update card %d: %v", card.ID, err)
		return models.ReviewCard{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to read rows affected: %v", err)
		return models.ReviewCard{}, err
	}
	if affected == 0 {
		log.Warn("version conflict on card %d at version %d", card.ID, card.Version)
		return models.ReviewCard{}, repository.ErrVersionConflict
	}

	card.Version++
	log.Debug("card updated: id=%d, version=%d", card.ID, card.Version)
	return card, nil
}
