package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/avelar/memora/internal/errors"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/repository"
	"github.com/avelar/memora/internal/services"
	"github.com/avelar/memora/internal/worker"
)

type Server struct {
	DB *sql.DB

	LearnerService services.LearnerService
	ProjectService services.ProjectService
	ConceptService services.ConceptService
	ReviewService  services.ReviewService
	QueueService   services.QueueService
	MasteryService services.MasteryService
	GapService     services.GapService

	Masteries repository.MasteryRepository
	StatsPool *worker.Pool
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON parses the request body into dst, rejecting unknown fields so
// typos in client payloads fail loudly instead of silently defaulting.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}
