package router

import (
	"net/http"
	"time"

	"theagency-bot/internal/handler"
	"theagency-bot/internal/middleware"
	"theagency-bot/pkg/apierror"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	EconomyHandler *handler.EconomyHandler

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// New creates and configures the HTTP router. The API is read-only and fully
// open: CORS allows every origin but only GET.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)

	requests := cfg.RateLimitRequests
	if requests <= 0 {
		requests = 200
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = 15 * time.Minute
	}
	r.Use(httprate.LimitByIP(requests, window))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
		}

		if cfg.EconomyHandler != nil {
			r.Get("/leaderboard", cfg.EconomyHandler.GetLeaderboard)
			r.Get("/user/{userID}/balance", cfg.EconomyHandler.GetUserBalance)
		}
	})

	// Unmatched routes get the API's JSON 404 shape.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		err := apierror.NotFound("Endpoint not found")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(err.StatusCode)
		w.Write(err.ToJSON())
	})

	return r
}
