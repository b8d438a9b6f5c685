package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHealthChecker(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	h := NewHealthChecker(ok, fail, zap.NewNop())
	status := h.Check(context.Background())
	assert.Equal(t, StatusHealthy, status.Database)
	assert.Equal(t, StatusUnhealthy, status.Redis)
	assert.True(t, status.Healthy(), "redis does not gate health")
	assert.True(t, h.DatabaseConnected())

	h = NewHealthChecker(fail, ok, zap.NewNop())
	assert.False(t, h.Check(context.Background()).Healthy())

	h = NewHealthChecker(MongoPing(nil), RedisPing(nil), zap.NewNop())
	status = h.Check(context.Background())
	assert.Equal(t, StatusNotConnected, status.Database)
	assert.Equal(t, StatusNotConnected, status.Redis)
	assert.False(t, h.DatabaseConnected())
}
