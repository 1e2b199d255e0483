package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginLimiter throttles login attempts per email and client address using a
// fixed window counter in Redis. It fails open: authentication must keep
// working when the cache is down.
type LoginLimiter struct {
	client *redis.Client
	logger *zap.Logger
	limit  int
	window time.Duration
}

// NewLoginLimiter builds a limiter. A nil client disables limiting.
func NewLoginLimiter(client *redis.Client, logger *zap.Logger, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{client: client, logger: logger, limit: limit, window: window}
}

// Allow records one attempt and reports whether it is within the window
// budget.
func (l *LoginLimiter) Allow(ctx context.Context, email, remoteAddr string) bool {
	if l == nil || l.client == nil {
		return true
	}

	key := fmt.Sprintf("login_attempts:%s:%s", strings.ToLower(email), remoteAddr)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}
