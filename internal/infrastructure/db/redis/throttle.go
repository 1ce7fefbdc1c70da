package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per client in a fixed window,
// backed by Redis. Key format: throttle:login:<client>
//
// The throttle fails open: if Redis is unreachable the login path proceeds
// and the error is left to the caller to log. Locking users out because a
// cache is down would be worse than briefly losing the throttle.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a throttle allowing maxAttempts failures per
// window.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Blocked reports whether the client has exhausted its attempts.
func (t *LoginThrottle) Blocked(ctx context.Context, client string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(client)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxAttempts, nil
}

// Fail records one failed attempt. The window starts at the first failure.
func (t *LoginThrottle) Fail(ctx context.Context, client string) error {
	key := t.key(client)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, client string) error {
	return t.client.Del(ctx, t.key(client)).Err()
}

func (t *LoginThrottle) key(client string) string {
	return "throttle:login:" + client
}
