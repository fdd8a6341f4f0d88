package worker

import (
	"context"

	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/repository"
)

// RefreshMasteryStatsJob recomputes the cached per-state counts for one
// learner. Enqueued after every rated review; losing one is harmless since
// the next review enqueues another.
type RefreshMasteryStatsJob struct {
	Masteries repository.MasteryRepository
	LearnerID int64
}

func (j *RefreshMasteryStatsJob) Name() string { return "refresh_mastery_stats" }

func (j *RefreshMasteryStatsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("learner_id", j.LearnerID)
	if err := j.Masteries.RefreshCache(ctx, j.LearnerID); err != nil {
		log.Error("failed to refresh mastery stats cache: %v", err)
		return err
	}
	log.Debug("mastery stats cache refreshed")
	return nil
}
