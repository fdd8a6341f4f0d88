package api

import (
	"net/http"
)

func (s *Server) handleEvaluatePretest(w http.ResponseWriter, r *http.Request) {
	if _, err := urlID(r, "learnerID"); err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Correct int      `json:"correct"`
		Total   int      `json:"total"`
		Gaps    []string `json:"gaps"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.GapService.EvaluatePretest(r.Context(), req.Correct, req.Total, req.Gaps)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
