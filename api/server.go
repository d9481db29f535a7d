/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the kiosk and admin frontends

ROUTE GROUPS:
  /api/scan           Check-in/check-out scan processing
  /api/employees/*    Directory, attendance view, ledger, settlement
  /api/sites/*        Site registry and QR badges
  /api/holidays/*     Company holiday administration
  /api/leaves/*       Leave submission and the review/approve flow
  /api/ledger/*       Manual adjustments

SECURITY NOTE:
  No authentication middleware. Identity arrives in request bodies and is
  trusted; authentication is handled upstream.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

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
		// Scan endpoint (the hot path)
		r.Post("/scan", h.Scan)

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/attendance", h.GetAttendanceMonth)
			r.Get("/{id}/ledger", h.GetLedger)
			r.Post("/{id}/settle", h.Settle)
			r.Get("/{id}/leaves", h.ListEmployeeLeaves)
		})

		// Site routes
		r.Route("/sites", func(r chi.Router) {
			r.Get("/", h.ListSites)
			r.Post("/", h.CreateSite)
			r.Get("/{id}/qr", h.SiteQR)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Leave routes
		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.SubmitLeave)
			r.Get("/pending", h.ListPendingLeaves)
			r.Post("/{id}/review", h.ReviewLeave)
			r.Post("/{id}/approve", h.ApproveLeave)
			r.Post("/{id}/reject", h.RejectLeave)
		})

		// Ledger routes
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/manual", h.PostManualEntry)
		})

		// Scenario routes (development/demo seeding)
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Minimal index for humans poking at the service
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Attendance Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Attendance Engine API</h1>
<ul>
<li><a href="/api/employees">/api/employees</a> - List employees</li>
<li><a href="/api/sites">/api/sites</a> - List sites</li>
<li><a href="/api/holidays">/api/holidays</a> - List holidays</li>
<li><a href="/api/leaves/pending">/api/leaves/pending</a> - Pending leave requests</li>
</ul>
</body>
</html>`))
	})

	return r
}
