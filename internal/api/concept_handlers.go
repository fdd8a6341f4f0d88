package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelar/memora/internal/models"
)

func (s *Server) handleCreateConcept(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	concept, err := s.ConceptService.CreateConcept(r.Context(), projectID, req.Title, req.Summary, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, concept)
}

func (s *Server) handleListConcepts(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	concepts, err := s.ConceptService.ListConcepts(r.Context(), models.ConceptFilter{
		ProjectID: projectID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, concepts)
}

func (s *Server) handleGetConcept(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "conceptID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	concept, err := s.ConceptService.GetConcept(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, concept)
}

func (s *Server) handleDeleteConcept(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "conceptID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ConceptService.DeleteConcept(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
