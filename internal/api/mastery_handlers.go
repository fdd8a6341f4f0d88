package api

import (
	"net/http"
	"strconv"

	"github.com/avelar/memora/internal/logger"
)

func (s *Server) handleMasteryDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := urlID(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	projectID, _ := strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)

	// ?cached=true reads the worker-maintained cache instead of aggregating.
	if r.URL.Query().Get("cached") == "true" {
		dash, err := s.MasteryService.CachedDashboard(r.Context(), learnerID, projectID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, dash)
		return
	}

	dash, err := s.MasteryService.Dashboard(r.Context(), learnerID, projectID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("dashboard built: total=%d, progress=%d%%", dash.Total, dash.ProgressPercent)
	respondJSON(w, r, http.StatusOK, dash)
}
