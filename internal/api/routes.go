package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/learners", s.handleCreateLearner)
		r.Get("/learners", s.handleListLearners)
		r.Route("/learners/{learnerID}", func(r chi.Router) {
			r.Get("/", s.handleGetLearner)
			r.Delete("/", s.handleDeleteLearner)
			r.Post("/projects", s.handleCreateProject)
			r.Get("/projects", s.handleListProjects)
			r.Get("/queue", s.handleQueue)
			r.Post("/sessions", s.handleStartSession)
			r.Get("/mastery", s.handleMasteryDashboard)
			r.Post("/pretest", s.handleEvaluatePretest)
			r.Get("/cards/{cardID}", s.handleGetCard)
			r.Get("/cards/{cardID}/preview", s.handlePreviewCard)
			r.Post("/cards/{cardID}/review", s.handleReviewCard)
		})

		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Delete("/", s.handleDeleteProject)
			r.Post("/concepts", s.handleCreateConcept)
			r.Get("/concepts", s.handleListConcepts)
		})

		r.Route("/concepts/{conceptID}", func(r chi.Router) {
			r.Get("/", s.handleGetConcept)
			r.Delete("/", s.handleDeleteConcept)
		})

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/advance", s.handleAdvanceSession)
			r.Delete("/", s.handleAbandonSession)
		})
	})

	return r
}
