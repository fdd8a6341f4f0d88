package api

import (
	"net/http"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	project, err := s.ProjectService.CreateProject(r.Context(), learnerID, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, project)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	projects, err := s.ProjectService.ListProjects(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	project, err := s.ProjectService.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProjectService.DeleteProject(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
