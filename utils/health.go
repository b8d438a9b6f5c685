package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Component states reported by HealthChecker.
const (
	StatusHealthy      = "healthy"
	StatusUnhealthy    = "unhealthy"
	StatusNotConnected = "not_connected"
)

// PingFunc checks one backing service.
type PingFunc func(ctx context.Context) error

// MongoPing pings the primary. A nil client yields nil.
func MongoPing(client *mongo.Client) PingFunc {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// RedisPing pings a Redis client. A nil client yields nil.
func RedisPing(client *redis.Client) PingFunc {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// HealthStatus is a snapshot of the backing services.
type HealthStatus struct {
	Database  string    `json:"database"`
	Redis     string    `json:"redis"`
	CheckedAt time.Time `json:"timestamp"`
}

// Healthy reports whether the service can answer requests. Redis only backs
// token revocation, which degrades open, so it does not count.
func (h HealthStatus) Healthy() bool {
	return h.Database == StatusHealthy
}

// HealthChecker pings Mongo and Redis on demand.
type HealthChecker struct {
	Mongo   PingFunc
	Redis   PingFunc
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewHealthChecker(mongoPing, redisPing PingFunc, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{Mongo: mongoPing, Redis: redisPing, Timeout: 2 * time.Second, Logger: logger}
}

// DatabaseConnected reports whether a Mongo client was configured.
func (h *HealthChecker) DatabaseConnected() bool {
	return h.Mongo != nil
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Database:  h.probe(ctx, "mongo", h.Mongo),
		Redis:     h.probe(ctx, "redis", h.Redis),
		CheckedAt: time.Now().UTC(),
	}
}

func (h *HealthChecker) probe(ctx context.Context, name string, ping PingFunc) string {
	if ping == nil {
		return StatusNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()
	if err := ping(ctx); err != nil {
		h.Logger.Error("Health check failed", zap.String("component", name), zap.Error(err))
		return StatusUnhealthy
	}
	return StatusHealthy
}
