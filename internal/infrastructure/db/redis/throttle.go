package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultWindow      = 15 * time.Minute
	defaultMaxAttempts = 10
)

// LoginThrottle counts login attempts per email in a fixed window, backed by
// Redis. Key format: login_attempts:<lowercased email>
//
// It guards the credential endpoint against brute force; it does not revoke
// sessions that were already issued.
type LoginThrottle struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int64
}

// NewLoginThrottle creates a throttle with the default window and limit.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{
		client:      client,
		window:      defaultWindow,
		maxAttempts: defaultMaxAttempts,
	}
}

// Allow records one attempt for email and reports whether it is within the
// limit. The counter expires with the window, so a blocked email unblocks
// itself without intervention.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	key := t.key(email)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login throttle: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("login throttle: %w", err)
		}
	}
	return n <= t.maxAttempts, nil
}

// Reset clears the counter for email, called after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *LoginThrottle) key(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}
