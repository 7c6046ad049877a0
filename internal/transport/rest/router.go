package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/attendance"
	"github.com/twofourteen/hr-portal/internal/auth"
	"github.com/twofourteen/hr-portal/internal/breaks"
	"github.com/twofourteen/hr-portal/internal/leave"
	"github.com/twofourteen/hr-portal/internal/roster"
	"github.com/twofourteen/hr-portal/internal/store"
	"github.com/twofourteen/hr-portal/internal/transport/middleware"
	"github.com/twofourteen/hr-portal/internal/transport/swagger"
	"github.com/twofourteen/hr-portal/internal/user"
)

// Handlers collects every mounted handler. Nil entries are skipped so
// partial wiring in tests stays possible.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Attendance *attendance.Handler
	Breaks     *breaks.Handler
	Leave      *leave.Handler
	Roster     *roster.Handler
}

// RegisterAllRoutes mounts the full API under /api/v1.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, redis *store.Redis, h Handlers, loginLimiter middleware.Limiter, metrics internal.MetricsConfig, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redis)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if metrics.Enabled {
		path := metrics.Path
		if path == "" {
			path = "/metrics"
		}
		router.Use(middleware.Metrics)
		router.Handle(path, promhttp.Handler())
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes; credential endpoints sit behind the rate limiter
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Group(func(lr chi.Router) {
					if loginLimiter != nil {
						lr.Use(middleware.RateLimit(loginLimiter))
					}
					lr.Post("/login", h.Auth.Login)
					lr.Post("/signup", h.Auth.Signup)
				})
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require a valid session
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetMe)
			}

			// Collection endpoints: POST opens, PATCH closes, keyed by
			// the id in the body.
			if h.Attendance != nil {
				pr.Route("/attendance", func(ar chi.Router) {
					ar.Get("/", h.Attendance.GetAttendance)
					ar.Post("/", h.Attendance.ClockIn)
					ar.Patch("/", h.Attendance.ClockOut)
				})
			}

			if h.Breaks != nil {
				pr.Route("/breaks", func(br chi.Router) {
					br.Get("/", h.Breaks.GetBreaks)
					br.Post("/", h.Breaks.StartBreak)
					br.Patch("/", h.Breaks.EndBreak)
				})
			}

			if h.Leave != nil {
				pr.Route("/leaves", func(lr chi.Router) {
					lr.Get("/", h.Leave.GetLeaves)
					lr.Post("/", h.Leave.CreateLeave)
					lr.Patch("/", h.Leave.CancelLeave)
				})
			}

			// HR views
			pr.Route("/hr", func(hr chi.Router) {
				hr.Use(h.Auth.RequireHR)

				if h.Roster != nil {
					hr.Get("/attendance", h.Roster.GetRoster)
					hr.Get("/breaks", h.Roster.GetTodayBreaks)
				}

				if h.Leave != nil {
					hr.Get("/leaves", h.Leave.ListAllLeaves)
					hr.Patch("/leaves", h.Leave.DecideLeave)
					hr.Delete("/leaves", h.Leave.DeleteLeave)
				}
			})
		})
	})
}
