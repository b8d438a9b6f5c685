package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RevokedTokenPrefix is the prefix used for Redis revocation keys.
const RevokedTokenPrefix = "auth:revoked:"

// RedisTokenRevoker records logged-out tokens until they would have expired.
type RedisTokenRevoker struct {
	client *redis.Client
}

func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{client: client}
}

// Revoke stores the token hash for ttl. Non-positive ttls are a no-op since
// the token is already expired.
func (r *RedisTokenRevoker) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, RevokedTokenPrefix+tokenHash, 1, ttl).Err()
}

// IsRevoked reports whether the token hash was revoked.
func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := r.client.Exists(ctx, RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
