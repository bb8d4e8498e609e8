package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/salesworks/salespipe/internal/repository"
)

// NewRouter creates the Chi router exposing persisted pipeline runs.
func NewRouter(runRepo *repository.RunRepo, logger zerolog.Logger) http.Handler {
	h := &Handlers{runRepo: runRepo, log: logger}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{id}", h.GetRun)
		r.Get("/runs/{id}/report", h.GetRunReport)
		r.Get("/runs/{id}/transactions", h.ListRunTransactions)
	})

	return r
}
