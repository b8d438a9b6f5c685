package handlers

import (
	"context"
	"net/http"
	"time"

	"commit/utils"

	"github.com/gin-gonic/gin"
)

const (
	apiName    = "CommIT API"
	apiVersion = "2.0.0"
)

// HealthReporter is satisfied by *utils.HealthChecker.
type HealthReporter interface {
	DatabaseConnected() bool
	Check(ctx context.Context) utils.HealthStatus
}

type StatusHandler struct {
	Health HealthReporter
}

func NewStatusHandler(health HealthReporter) *StatusHandler {
	return &StatusHandler{Health: health}
}

// RootHandler handles GET /.
func (h *StatusHandler) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":               apiName,
		"version":            apiVersion,
		"status":             "running",
		"timestamp":          time.Now().UTC(),
		"database_connected": h.Health.DatabaseConnected(),
	})
}

// HealthHandler handles GET /health. It answers 503 when Mongo is down.
func (h *StatusHandler) HealthHandler(c *gin.Context) {
	status := h.Health.Check(c.Request.Context())
	code, overall := http.StatusOK, utils.StatusHealthy
	if !status.Healthy() {
		code, overall = http.StatusServiceUnavailable, utils.StatusUnhealthy
	}
	c.JSON(code, gin.H{
		"status":    overall,
		"database":  status.Database,
		"redis":     status.Redis,
		"timestamp": status.CheckedAt,
	})
}
