package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Raymond9734/customer-registry/internal/queue"
)

// HealthChecker is implemented by collaborators that can report reachability
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	database    HealthChecker
	queueClient queue.Client
	logger      *slog.Logger
}

// NewHealthHandler creates a new health handler.
// A nil database means the in-memory store is in use.
func NewHealthHandler(database HealthChecker, queueClient queue.Client, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		database:    database,
		queueClient: queueClient,
		logger:      logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string            `json:"status"`
	Services    map[string]string `json:"services"`
	QueueLength *int64            `json:"queue_length,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	if h.database != nil {
		h.check(ctx, &response, "database", h.database)
	} else {
		response.Services["database"] = "in_memory"
	}

	if h.queueClient != nil {
		if h.check(ctx, &response, "queue", h.queueClient) {
			if length, err := h.queueClient.Length(ctx); err == nil {
				response.QueueLength = &length
			}
		}
	} else {
		response.Services["queue"] = "not_configured"
	}

	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}

// check records the health of one dependency and reports whether it is healthy
func (h *HealthHandler) check(ctx context.Context, response *HealthResponse, name string, checker HealthChecker) bool {
	if err := checker.Health(ctx); err != nil {
		h.logger.Error(name+" health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services[name] = "unhealthy"
		return false
	}
	response.Services[name] = "healthy"
	return true
}
