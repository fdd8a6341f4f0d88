package services

import (
	"context"
	"strings"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

// ProjectService manages learning projects
type ProjectService interface {
	CreateProject(ctx context.Context, learnerID int64, name string) (*models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	ListProjects(ctx context.Context, learnerID int64) ([]models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

type projectService struct {
	projects repository.ProjectRepository
	learners repository.LearnerRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects repository.ProjectRepository, learners repository.LearnerRepository) ProjectService {
	return &projectService{projects: projects, learners: learners}
}

func (s *projectService) CreateProject(ctx context.Context, learnerID int64, name string) (*models.Project, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating project: learner_id=%d, name=%s", learnerID, name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	learner, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to load learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", learnerID)
	}

	id, err := s.projects.Insert(ctx, models.Project{LearnerID: learnerID, Name: name})
	if err != nil {
		log.Error("failed to insert project: %v", err)
		return nil, errors.NewInternalError(err)
	}

	project, err := s.projects.Get(ctx, id)
	if err != nil || project == nil {
		log.Error("failed to reload project %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("project created: id=%d", id)
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get project: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if project == nil {
		return nil, errors.NewNotFoundError("project", id)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, learnerID int64) ([]models.Project, error) {
	projects, err := s.projects.ListByLearner(ctx, learnerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list projects: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return projects, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting project: id=%d", id)

	project, err := s.projects.Get(ctx, id)
	if err != nil {
		log.Error("failed to get project: %v", err)
		return errors.NewInternalError(err)
	}
	if project == nil {
		return errors.NewNotFoundError("project", id)
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		log.Error("failed to delete project: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
