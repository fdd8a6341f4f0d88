package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/models"
	"github.com/avelar/memora/internal/review"
	"github.com/go-chi/chi/v5"
)

// sessionView is the wire shape of a session: the full plan stays server-side,
// clients get the cursor position and the current card.
type sessionView struct {
	ID        string              `json:"id"`
	LearnerID int64               `json:"learner_id"`
	ProjectID int64               `json:"project_id,omitempty"`
	State     review.SessionState `json:"state"`
	PlanSize  int                 `json:"plan_size"`
	Cursor    int                 `json:"cursor"`
	Remaining int                 `json:"remaining"`
	Current   *models.ReviewCard  `json:"current_card,omitempty"`
	StartedAt time.Time           `json:"started_at"`
}

func viewSession(sess *review.Session) sessionView {
	return sessionView{
		ID:        sess.ID,
		LearnerID: sess.LearnerID,
		ProjectID: sess.ProjectID,
		State:     sess.State,
		PlanSize:  len(sess.Plan),
		Cursor:    sess.Cursor,
		Remaining: sess.Remaining(),
		Current:   sess.Current(),
		StartedAt: sess.StartedAt,
	}
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	projectID, _ := strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	cards, err := s.QueueService.DueCards(r.Context(), learnerID, projectID, limit, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"due_count": len(cards),
		"cards":     cards,
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		ProjectID int64 `json:"project_id"`
		Limit     int   `json:"limit"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sess, err := s.QueueService.StartSession(r.Context(), learnerID, req.ProjectID, req.Limit, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("session started: id=%s, plan=%d cards", sess.ID, len(sess.Plan))
	respondJSON(w, r, http.StatusCreated, viewSession(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	sess, err := s.QueueService.GetSession(r.Context(), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, viewSession(sess))
}

func (s *Server) handleAdvanceSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	sess, err := s.QueueService.AdvanceSession(r.Context(), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, viewSession(sess))
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		handleError(w, r, errors.NewBadRequestError("invalid session id"))
		return
	}

	s.QueueService.AbandonSession(r.Context(), sessionID)
	respondJSON(w, r, http.StatusNoContent, nil)
}
