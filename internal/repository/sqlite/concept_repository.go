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

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type conceptRepository struct {
	db *sql.DB
}

// NewConceptRepository creates a new ConceptRepository implementation
func NewConceptRepository(db *sql.DB) repository.ConceptRepository {
	return &conceptRepository{db: db}
}

func (r *conceptRepository) Insert(ctx context.Context, c models.Concept) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("concept_repo")
	log.Debug("inserting concept: project_id=%d, title=%s", c.ProjectID, c.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO concepts (project_id, title, summary)
VALUES (?, ?, ?)
`, c.ProjectID, c.Title, c.Summary)
	if err != nil {
		log.Error("failed to insert concept: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get concept id: %v", err)
		return 0, err
	}
	log.Debug("concept inserted: id=%d", id)
	return id, nil
}

func (r *conceptRepository) Get(ctx context.Context, id int64) (*models.Concept, error) {
	log := logger.FromContext(ctx).WithPrefix("concept_repo")
	log.Debug("getting concept: id=%d", id)

	var c models.Concept
	err := r.db.QueryRowContext(ctx, `
SELECT id, project_id, title, summary, created_at
FROM concepts
WHERE id = ?
`, id).Scan(&c.ID, &c.ProjectID, &c.Title, &c.Summary, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("concept not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get concept: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *conceptRepository) List(ctx context.Context, filter models.ConceptFilter) ([]models.Concept, error) {
	log := logger.FromContext(ctx).WithPrefix("concept_repo")
	log.Debug("listing concepts: project_id=%d, learner_id=%d", filter.ProjectID, filter.LearnerID)

	query := sqlBuilder.Select("c.id", "c.project_id", "c.title", "c.summary", "c.created_at").
		From("concepts c")

	// Dynamic WHERE clauses
	if filter.ProjectID != 0 {
		query = query.Where(squirrel.Eq{"c.project_id": filter.ProjectID})
	}
	if filter.LearnerID != 0 {
		query = query.Join("projects p ON p.id = c.project_id").
			Where(squirrel.Eq{"p.learner_id": filter.LearnerID})
	}

	query = query.OrderBy("c.created_at ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build concept query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list concepts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var concepts []models.Concept
	for rows.Next() {
		var c models.Concept
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Title, &c.Summary, &c.CreatedAt); err != nil {
			log.Error("failed to scan concept row: %v", err)
			return nil, err
		}
		concepts = append(concepts, c)
	}
	log.Debug("found %d concepts", len(concepts))
	return concepts, rows.Err()
}

func (r *conceptRepository) Count(ctx context.Context, filter models.ConceptFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("concept_repo")
	log.Debug("counting concepts: project_id=%d, learner_id=%d", filter.ProjectID, filter.LearnerID)

	query := sqlBuilder.Select("COUNT(*)").From("concepts c")
	if filter.ProjectID != 0 {
		query = query.Where(squirrel.Eq{"c.project_id": filter.ProjectID})
	}
	if filter.LearnerID != 0 {
		query = query.Join("projects p ON p.id = c.project_id").
			Where(squirrel.Eq{"p.learner_id": filter.LearnerID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build concept count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count concepts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *conceptRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("concept_repo")
	log.Debug("deleting concept: id=%d", id)

	// Cards, records and mastery rows cascade via foreign keys.
	_, err := r.db.ExecContext(ctx, `DELETE FROM concepts WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete concept %d: %v", id, err)
	}
	return err
}
