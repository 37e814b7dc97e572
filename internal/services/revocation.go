package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations is a denylist of session token ids
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopRevocations never revokes; tokens stay valid until they expire
type NopRevocations struct{}

func (NopRevocations) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// RedisRevocations keeps revoked token ids in redis until the token would have expired
type RedisRevocations struct {
	Client *redis.Client
	Prefix string
}

// NewRedisRevocations parses a redis:// URL and connects
func NewRedisRevocations(redisURL string) (*RedisRevocations, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return &RedisRevocations{Client: redis.NewClient(opts), Prefix: "session:revoked:"}, nil
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.Client.Set(ctx, r.Prefix+tokenID, 1, ttl).Err()
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.Client.Get(ctx, r.Prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping tests the Redis connection
func (r *RedisRevocations) Ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisRevocations) Close() error {
	return r.Client.Close()
}
