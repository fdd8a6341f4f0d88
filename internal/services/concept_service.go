package services

import (
	"context"
	"strings"
	"time"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/mastery"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
	"github.com/avelar/memora/internal/srs"
)

// ConceptService manages concepts and their scheduling records
type ConceptService interface {
	CreateConcept(ctx context.Context, projectID int64, title, summary string, now time.Time) (*models.Concept, error)
	GetConcept(ctx context.Context, id int64) (*models.Concept, error)
	ListConcepts(ctx context.Context, filter models.ConceptFilter) ([]models.Concept, error)
	DeleteConcept(ctx context.Context, id int64) error
}

type conceptService struct {
	concepts  repository.ConceptRepository
	projects  repository.ProjectRepository
	cards     repository.CardRepository
	masteries repository.MasteryRepository
	scheduler *srs.Scheduler
}

// NewConceptService creates a new ConceptService
func NewConceptService(
	concepts repository.ConceptRepository,
	projects repository.ProjectRepository,
	cards repository.CardRepository,
	masteries repository.MasteryRepository,
	scheduler *srs.Scheduler,
) ConceptService {
	return &conceptService{
		concepts:  concepts,
		projects:  projects,
		cards:     cards,
		masteries: masteries,
		scheduler: scheduler,
	}
}

// CreateConcept inserts the concept and seeds its scheduling record for the
// project's learner: a fresh card due immediately, marked Unseen.
func (s *conceptService) CreateConcept(ctx context.Context, projectID int64, title, summary string, now time.Time) (*models.Concept, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating concept: project_id=%d, title=%s", projectID, title)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		log.Error("failed to load project: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if project == nil {
		return nil, errors.NewNotFoundError("project", projectID)
	}

	conceptID, err := s.concepts.Insert(ctx, models.Concept{
		ProjectID: projectID,
		Title:     title,
		Summary:   summary,
	})
	if err != nil {
		log.Error("failed to insert concept: %v", err)
		return nil, errors.NewInternalError(err)
	}

	card := s.scheduler.NewCard(conceptID, project.LearnerID, now)
	cardID, err := s.cards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to seed review card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.masteries.Upsert(ctx, models.MasteryRow{
		CardID:    cardID,
		State:     mastery.Unseen.String(),
		UpdatedAt: now,
	}); err != nil {
		log.Warn("failed to seed mastery state: %v", err)
	}

	concept, err := s.concepts.Get(ctx, conceptID)
	if err != nil || concept == nil {
		log.Error("failed to reload concept %d: %v", conceptID, err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("concept created: id=%d, card_id=%d", conceptID, cardID)
	return concept, nil
}

func (s *conceptService) GetConcept(ctx context.Context, id int64) (*models.Concept, error) {
	concept, err := s.concepts.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get concept: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if concept == nil {
		return nil, errors.NewNotFoundError("concept", id)
	}
	return concept, nil
}

func (s *conceptService) ListConcepts(ctx context.Context, filter models.ConceptFilter) ([]models.Concept, error) {
	concepts, err := s.concepts.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list concepts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return concepts, nil
}

func (s *conceptService) DeleteConcept(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting concept: id=%d", id)

	concept, err := s.concepts.Get(ctx, id)
	if err != nil {
		log.Error("failed to get concept: %v", err)
		return errors.NewInternalError(err)
	}
	if concept == nil {
		return errors.NewNotFoundError("concept", id)
	}
	if err := s.concepts.Delete(ctx, id); err != nil {
		log.Error("failed to delete concept: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
