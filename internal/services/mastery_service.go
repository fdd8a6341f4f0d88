package services

import (
	"context"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/mastery"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/repository"
)

// StateCount pairs a state with its concept count and display metadata.
type StateCount struct {
	State mastery.State `json:"state"`
	Meta  mastery.Meta  `json:"meta"`
	Count int           `json:"count"`
}

// Dashboard is the aggregate mastery view for a learner or one project.
type Dashboard struct {
	LearnerID       int64        `json:"learner_id"`
	ProjectID       int64        `json:"project_id,omitempty"`
	Counts          []StateCount `json:"counts"`
	Total           int          `json:"total"`
	ProgressPercent int          `json:"progress_percent"`
	WeakestState    mastery.State `json:"weakest_state"`
}

// MasteryService builds mastery dashboards
type MasteryService interface {
	Dashboard(ctx context.Context, learnerID, projectID int64) (*Dashboard, error)
	CachedDashboard(ctx context.Context, learnerID, projectID int64) (*Dashboard, error)
	RefreshStats(ctx context.Context, learnerID int64) error
}

type masteryService struct {
	masteries repository.MasteryRepository
	concepts  repository.ConceptRepository
}

// NewMasteryService creates a new MasteryService
func NewMasteryService(masteries repository.MasteryRepository, concepts repository.ConceptRepository) MasteryService {
	return &masteryService{masteries: masteries, concepts: concepts}
}

func (s *masteryService) Dashboard(ctx context.Context, learnerID, projectID int64) (*Dashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building mastery dashboard: learner_id=%d, project_id=%d", learnerID, projectID)

	counts, err := s.masteries.CountsByState(ctx, learnerID, projectID)
	if err != nil {
		log.Error("failed to count mastery states: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.build(ctx, learnerID, projectID, counts)
}

// CachedDashboard reads the worker-maintained stats cache instead of
// aggregating live rows. Slightly stale, but constant cost per read.
func (s *masteryService) CachedDashboard(ctx context.Context, learnerID, projectID int64) (*Dashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("reading cached mastery dashboard: learner_id=%d, project_id=%d", learnerID, projectID)

	counts, err := s.masteries.CachedCounts(ctx, learnerID, projectID)
	if err != nil {
		log.Error("failed to read cached counts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.build(ctx, learnerID, projectID, counts)
}

func (s *masteryService) RefreshStats(ctx context.Context, learnerID int64) error {
	if err := s.masteries.RefreshCache(ctx, learnerID); err != nil {
		logger.FromContext(ctx).Error("failed to refresh mastery stats: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// build turns raw state counts into a Dashboard. Concepts without a mastery
// row are folded into Unseen so the distribution always covers every concept
// in scope.
func (s *masteryService) build(ctx context.Context, learnerID, projectID int64, raw map[string]int) (*Dashboard, error) {
	log := logger.FromContext(ctx)

	dist := make(mastery.Distribution, len(raw))
	for name, n := range raw {
		state, err := mastery.ParseState(name)
		if err != nil {
			log.Warn("skipping unknown mastery state %q", name)
			continue
		}
		dist[state] = n
	}

	totalConcepts, err := s.concepts.Count(ctx, models.ConceptFilter{
		LearnerID: learnerID,
		ProjectID: projectID,
	})
	if err != nil {
		log.Error("failed to count concepts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if unseen := totalConcepts - dist.Total(); unseen > 0 {
		dist[mastery.Unseen] += unseen
	}

	// Linear states in rank order, then Misconceived if present.
	var counts []StateCount
	for st := mastery.Unseen; st <= mastery.Misconceived; st++ {
		if n := dist[st]; n > 0 {
			counts = append(counts, StateCount{State: st, Meta: st.Meta(), Count: n})
		}
	}

	return &Dashboard{
		LearnerID:       learnerID,
		ProjectID:       projectID,
		Counts:          counts,
		Total:           dist.Total(),
		ProgressPercent: mastery.Progress(dist),
		WeakestState:    mastery.Lowest(dist),
	}, nil
}
