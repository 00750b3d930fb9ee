package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/session"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	backend  backend.Client
	sessions session.Store
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backendClient backend.Client, sessions session.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		backend:  backendClient,
		sessions: sessions,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	if err := h.sessions.Ping(ctx); err != nil {
		h.logger.Error("session store health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["session_store"] = "unhealthy"
	} else {
		response.Services["session_store"] = "healthy"
	}

	if err := h.backend.Health(ctx); err != nil {
		h.logger.Error("backend health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["backend"] = "unreachable"
	} else {
		response.Services["backend"] = "reachable"
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
