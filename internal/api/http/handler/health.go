package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/storefront/internal/logger"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Health struct {
	checker HealthChecker
	logger  *logger.Logger
}

func NewHealth(checker HealthChecker, logger *logger.Logger) *Health {
	return &Health{checker: checker, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Ping(r.Context()); err != nil {
		h.logger.Error("Health handler: database ping failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
