// Package api exposes the store over HTTP for a host UI.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/fmizzell/simplecal"
)

// NewRouter creates the Chi router with all routes and middleware.
// decomposer may be nil, in which case decomposition answers 503.
func NewRouter(store *simplecal.Store, decomposer simplecal.Decomposer, apiKey string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(store)
	taskH := NewTaskHandler(store, decomposer)
	goalH := NewGoalHandler(store, decomposer)
	calendarH := NewCalendarHandler(store)
	eventH := NewEventHandler(store, logger)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Get("/snapshot", healthH.Snapshot)
		r.Get("/stats", healthH.Stats)

		r.Route("/inbox", func(r chi.Router) {
			r.Get("/", taskH.ListInbox)
			r.Post("/", taskH.AddInbox)
			r.Delete("/", taskH.DeleteInbox)
			r.Post("/{id}/today", taskH.MoveToToday)
			r.Post("/{id}/decompose", taskH.Decompose)
		})

		r.Route("/today", func(r chi.Router) {
			r.Get("/", taskH.ListToday)
			r.Delete("/", taskH.DeleteToday)
			r.Put("/{id}/start-time", taskH.UpdateStartTime)
		})

		r.Post("/tasks/{id}/complete", taskH.Complete)

		r.Route("/goals/{date}", func(r chi.Router) {
			r.Get("/", goalH.List)
			r.Post("/", goalH.Add)
			r.Delete("/", goalH.Delete)
			r.Post("/decompose", goalH.Decompose)
			r.Post("/{id}/priority", goalH.TogglePriority)
		})

		r.Get("/calendar/{month}", calendarH.Month)
		r.Post("/focus-sessions", calendarH.RecordFocusSession)
		r.Get("/events", eventH.Stream)
	})

	return r
}
