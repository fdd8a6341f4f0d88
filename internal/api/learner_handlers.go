package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/go-chi/chi/v5"
)

func urlID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

func (s *Server) handleCreateLearner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.GetOrCreateLearner(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, learner)
}

func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	learners, err := s.LearnerService.ListLearners(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, learners)
}

func (s *Server) handleGetLearner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.GetLearner(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	_ = s.LearnerService.TouchLearner(r.Context(), id, time.Now())
	respondJSON(w, r, http.StatusOK, learner)
}

func (s *Server) handleDeleteLearner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LearnerService.DeleteLearner(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("learner deleted: id=%d", id)
	respondJSON(w, r, http.StatusNoContent, nil)
}
