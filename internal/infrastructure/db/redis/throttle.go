package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultThrottleLimit  = 5
	DefaultThrottleWindow = 15 * time.Minute
)

// LoginThrottle counts failed logins per email in a fixed window.
// Key format: login_fail:<email>
type LoginThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive limit or window fall back to the defaults.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if limit <= 0 {
		limit = DefaultThrottleLimit
	}
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &LoginThrottle{client: client, limit: int64(limit), window: window}
}

// Blocked reports whether email has reached the failure limit in the current window.
func (l *LoginThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= l.limit, nil
}

// recordFailureSrc increments the counter and gives it a TTL when it has none,
// in one round trip. A key left without an expiry is repaired on the next failure.
const recordFailureSrc = `
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`

var recordFailure = redis.NewScript(recordFailureSrc)

// RecordFailure increments the counter. The window starts at the first failure.
func (l *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if err := recordFailure.Run(ctx, l.client, []string{l.key(email)}, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (l *LoginThrottle) key(email string) string {
	return "login_fail:" + email
}
