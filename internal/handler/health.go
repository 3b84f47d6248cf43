package handler

import (
	"fmt"
	"net/http"
	"time"

	"theagency-bot/pkg/response"
)

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	version     string
	environment string
	startTime   time.Time
}

// New creates a new handler.
func New(version, environment string) *Handler {
	return &Handler{
		version:     version,
		environment: environment,
		startTime:   time.Now(),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     h.version,
		Environment: h.environment,
		Uptime:      fmt.Sprintf("%.0f seconds", time.Since(h.startTime).Seconds()),
	}
	response.OK(w, resp)
}
