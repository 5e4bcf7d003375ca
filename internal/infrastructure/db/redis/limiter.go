package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per email.
// Key format: login_fail:<email>
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client, maxFailures: defaultMaxFailures, window: defaultWindow}
}

// TooMany reports whether the email has exhausted its failure budget.
func (l *LoginLimiter) TooMany(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.maxFailures, nil
}

// RecordFailure bumps the counter and refreshes the window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	if err := l.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	return l.client.Expire(ctx, key, l.window).Err()
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_fail:" + email
}
