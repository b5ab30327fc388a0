/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/dates/*      Date arithmetic and conventions
  /api/schedules    Schedule generation
  /api/calendars/*  Named holiday calendars
  /api/conventions  Registry keys
  /api/health       Liveness

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Date routes
		r.Route("/dates", func(r chi.Router) {
			r.Post("/shift", h.Shift)
			r.Post("/adjust", h.Adjust)
			r.Post("/diff", h.Diff)
			r.Post("/yearfraction", h.YearFraction)
		})

		// Schedule routes
		r.Post("/schedules", h.BuildSchedule)

		// Calendar routes
		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", h.ListCalendars)
			r.Post("/", h.CreateCalendar)
			r.Delete("/{name}", h.DeleteCalendar)
			r.Get("/{name}/holidays", h.GetHolidays)
			r.Post("/{name}/holidays", h.AddHolidays)
		})

		// Meta routes
		r.Get("/conventions", h.ListConventions)
		r.Get("/health", h.Health)
	})

	return r
}
