package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizdetails/backend/internal/infrastructure/config"
)

// TokenBlacklist records revoked tokens until they would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis.
// Suitable for distributed deployments where multiple instances need to
// share revocation state.
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist creates a blacklist backed by a new Redis connection
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "auth:revoked:",
	}, nil
}

// NewRedisTokenBlacklistWithClient creates a blacklist with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisTokenBlacklistWithClient(client *redis.Client, keyPrefix string) *RedisTokenBlacklist {
	if keyPrefix == "" {
		keyPrefix = "auth:revoked:"
	}
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Revoke marks a token ID as revoked for the given TTL. A non-positive TTL
// means the token already expired and there is nothing to record.
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := b.keyPrefix + jti
	if err := b.client.SetNX(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether a token ID has been revoked
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	key := b.keyPrefix + jti

	exists, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)
