package api

import (
	"net/http"
	"time"

	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/srs"
	"github.com/avelar/memora/internal/worker"
)

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := urlID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.ReviewService.GetCard(r.Context(), cardID, learnerID, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, detail)
}

// handlePreviewCard reports what each rating would do without rating the
// card, so clients can label the answer buttons with real intervals.
func (s *Server) handlePreviewCard(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := urlID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.ReviewService.GetCard(r.Context(), cardID, learnerID, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"card_id":        detail.Card.ID,
		"retrievability": detail.Retrievability,
		"intervals":      detail.Intervals,
	})
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := urlID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Rating srs.Rating `json:"rating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"card_id": cardID,
		"rating":  req.Rating.String(),
	})
	log.Debug("reviewing card")

	outcome, err := s.ReviewService.ReviewCard(r.Context(), cardID, learnerID, req.Rating, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}

	if s.StatsPool != nil {
		s.StatsPool.TrySubmit(&worker.RefreshMasteryStatsJob{
			Masteries: s.Masteries,
			LearnerID: learnerID,
		})
	}

	log.Info("card reviewed: state=%s", outcome.State)
	respondJSON(w, r, http.StatusOK, outcome)
}
