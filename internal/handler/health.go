package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/moodtunes/internal/infrastructure/redis"
	"github.com/yourorg/moodtunes/pkg/database"
)

// HealthHandler handles liveness and readiness checks
type HealthHandler struct {
	pool   *database.ConnectionPool
	redis  *redis.Client // nil when Redis is not configured
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(pool *database.ConnectionPool, redisClient *redis.Client, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthHandler{
		pool:   pool,
		redis:  redisClient,
		logger: logger,
	}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready handles GET /readyz. Returns 200 only when the durable store (and
// Redis, when configured) responds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Health(ctx); err != nil {
		h.logger.Warn("readiness check failed", slog.String("check", "postgres"), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database not ready"))
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", slog.String("check", "redis"), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("redis not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
