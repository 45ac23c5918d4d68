package handler

import (
	"log/slog"
	"net/http"

	"projectboard/internal/domain/repositories"
	"projectboard/internal/httputil"
)

// HealthResponse reports API and record store status
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Error  string `json:"error,omitempty"`
}

// HealthHandler answers liveness probes
type HealthHandler struct {
	store  repositories.Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a health handler that pings store
func NewHealthHandler(store repositories.Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// Health reports whether the record store is reachable
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		httputil.RespondJSON(w, http.StatusInternalServerError, HealthResponse{
			Status: "error",
			Store:  "disconnected",
			Error:  "record store unreachable",
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Store:  "connected",
	})
}
