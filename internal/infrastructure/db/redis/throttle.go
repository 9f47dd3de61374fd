package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per phone in Redis.
// Key format: login_fail:<phone>, expiring after the window.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Blocked reports whether the phone has exhausted its attempts in the window.
func (t *LoginThrottle) Blocked(ctx context.Context, phone string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(phone)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxAttempts, nil
}

// RecordFailure increments the failure counter, refreshing its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, phone string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.key(phone))
	pipe.Expire(ctx, t.key(phone), t.window)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, phone string) error {
	return t.client.Del(ctx, t.key(phone)).Err()
}

func (t *LoginThrottle) key(phone string) string {
	return "login_fail:" + phone
}
