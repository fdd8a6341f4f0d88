package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository implementation
func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Insert(ctx context.Context, p models.Project) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("project_repo")
	log.Debug("inserting project: learner_id=%d, name=%s", p.LearnerID, p.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO projects (learner_id, name)
VALUES (?, ?)
`, p.LearnerID, p.Name)
	if err != nil {
		log.Error("failed to insert project: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get project id: %v", err)
		return 0, err
	}
	log.Debug("project inserted: id=%d", id)
	return id, nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	log := logger.FromContext(ctx).WithPrefix("project_repo")
	log.Debug("getting project: id=%d", id)

	var p models.Project
	err := r.db.QueryRowContext(ctx, `
SELECT id, learner_id, name, created_at
FROM projects
WHERE id = ?
`, id).Scan(&p.ID, &p.LearnerID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("project not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get project: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) ListByLearner(ctx context.Context, learnerID int64) ([]models.Project, error) {
	log := logger.FromContext(ctx).WithPrefix("project_repo")
	log.Debug("listing projects: learner_id=%d", learnerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, learner_id, name, created_at
FROM projects
WHERE learner_id = ?
ORDER BY created_at ASC
`, learnerID)
	if err != nil {
		log.Error("failed to list projects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.LearnerID, &p.Name, &p.CreatedAt); err != nil {
			log.Error("failed to scan project row: %v", err)
			return nil, err
		}
		projects = append(projects, p)
	}
	log.Debug("found %d projects", len(projects))
	return projects, rows.Err()
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("project_repo")
	log.Debug("deleting project: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete project %d: %v", id, err)
	}
	return err
}
