// Package cooldown rate-limits verification code resends per email address.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "resend_cooldown:"

// Limiter reserves a resend slot for a key.
type Limiter interface {
	// Acquire reports false while a previous reservation for key is active.
	Acquire(ctx context.Context, key string) (bool, error)
	// Release drops a reservation so the caller may retry immediately.
	Release(ctx context.Context, key string) error
}

// Noop never limits. It is used when no cooldown is configured.
type Noop struct{}

func (Noop) Acquire(context.Context, string) (bool, error) { return true, nil }
func (Noop) Release(context.Context, string) error         { return nil }

// RedisLimiter stores reservations as expiring keys.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewRedisLimiter(client *redis.Client, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, window: window}
}

func (l *RedisLimiter) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), l.window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve resend slot: %w", err)
	}
	return ok, nil
}

func (l *RedisLimiter) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release resend slot: %w", err)
	}
	return nil
}
