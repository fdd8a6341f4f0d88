package services

import (
	"context"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/gap"
	"github.com/avelar/memora/internal/logger"
)

// GapService scores prerequisite pretests
type GapService interface {
	EvaluatePretest(ctx context.Context, correct, total int, gaps []string) (*gap.Result, error)
}

type gapService struct{}

// NewGapService creates a new GapService
func NewGapService() GapService {
	return &gapService{}
}

func (s *gapService) EvaluatePretest(ctx context.Context, correct, total int, gaps []string) (*gap.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("evaluating pretest: correct=%d, total=%d", correct, total)

	if correct < 0 || total < 0 {
		return nil, errors.NewValidationError("score", "counts must be non-negative")
	}
	if correct > total {
		return nil, errors.NewValidationError("score", "correct cannot exceed total")
	}

	result := gap.Classify(correct, total, gaps)
	log.Debug("pretest classified: score=%.1f%%, recommendation=%s", result.ScorePercent, result.Recommendation)
	return &result, nil
}
