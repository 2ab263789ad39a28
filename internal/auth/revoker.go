package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenRevoker stores the IDs of tokens that were logged out before expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "jobboard:revoked:"

// RedisRevoker keeps revoked token IDs in Redis with a TTL matching the
// token's remaining lifetime.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker creates a RedisRevoker on top of an existing client.
func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

// Revoke marks the token ID as revoked for ttl.
func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether the token ID is on the deny list.
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
