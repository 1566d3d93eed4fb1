package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLoginRateLimit is the default number of login attempts per minute.
	DefaultLoginRateLimit = 5

	// DefaultGenerateRateLimit is the default number of schedule-generation
	// runs a single acting user or team may trigger per minute.
	DefaultGenerateRateLimit = 3

	// DefaultRateLimitWindow is the default trailing window for rate limiting.
	DefaultRateLimitWindow = time.Minute
)

// SlidingWindowLimiter caps requests over a trailing time window using a
// Redis sorted set keyed by arrival timestamp: every attempt, allowed or
// rejected, adds its own member, members older than the window are
// trimmed before the count is taken. A fixed INCR/EXPIRE counter lets a caller burst up to
// 2x the limit across a window boundary; this doesn't.
type SlidingWindowLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

// NewSlidingWindowLimiter builds a limiter. A nil client makes Allow a
// permissive no-op: the limiter fails open when Redis isn't wired up.
func NewSlidingWindowLimiter(client *redis.Client, limit int, window time.Duration, keyPrefix string) *SlidingWindowLimiter {
	if limit <= 0 {
		limit = DefaultLoginRateLimit
	}
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if keyPrefix == "" {
		keyPrefix = "rate_limit"
	}

	return &SlidingWindowLimiter{client: client, limit: limit, window: window, keyPrefix: keyPrefix}
}

// Allow records the current attempt under key and reports whether it
// falls within the limiter's window, how many attempts remain, and how
// long until the oldest attempt currently counted against the limit
// drops out of the window.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, int, time.Duration, error) {
	if l.client == nil {
		return true, l.limit, 0, nil
	}

	fullKey := fmt.Sprintf("%s:%s", l.keyPrefix, key)
	now := time.Now()
	windowStartMs := now.Add(-l.window).UnixMilli()
	member := fmt.Sprintf("%d:%s", now.UnixMilli(), uuid.New().String())

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "0", fmt.Sprintf("%d", windowStartMs))
	pipe.ZAdd(ctx, fullKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	countCmd := pipe.ZCard(ctx, fullKey)
	pipe.PExpire(ctx, fullKey, l.window)
	oldestCmd := pipe.ZRangeWithScores(ctx, fullKey, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, err
	}

	count := int(countCmd.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	retryAfter := l.window
	if oldest := oldestCmd.Val(); len(oldest) > 0 {
		oldestAt := time.UnixMilli(int64(oldest[0].Score))
		if elapsed := now.Sub(oldestAt); elapsed < l.window {
			retryAfter = l.window - elapsed
		} else {
			retryAfter = 0
		}
	}

	return count <= l.limit, remaining, retryAfter, nil
}

// Reset clears every attempt recorded against key.
func (l *SlidingWindowLimiter) Reset(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("%s:%s", l.keyPrefix, key)
	return l.client.Del(ctx, fullKey).Err()
}

// LoginRateLimit throttles login attempts, keyed by client IP.
func LoginRateLimit(redisClient *redis.Client, limit int) gin.HandlerFunc {
	limiter := NewSlidingWindowLimiter(redisClient, limit, DefaultRateLimitWindow, "login_rate_limit")
	return rateLimitHandler(limiter, limit, "too many login attempts", func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// GenerateRateLimit throttles schedule-generation requests, keyed by the
// acting team when the caller carries a team claim and by user ID
// otherwise. The engine run this guards is CPU-bound and shared office
// workstations would otherwise pool an IP-keyed budget across unrelated
// schedulers working from the same network.
func GenerateRateLimit(redisClient *redis.Client, limit int) gin.HandlerFunc {
	limiter := NewSlidingWindowLimiter(redisClient, limit, DefaultRateLimitWindow, "generate_rate_limit")
	return rateLimitHandler(limiter, limit, "too many schedule-generation requests", func(c *gin.Context) string {
		claims, ok := GetUserClaims(c)
		if !ok {
			return "ip:" + c.ClientIP()
		}
		if claims.TeamID != "" {
			return "team:" + claims.TeamID
		}
		return "user:" + claims.UserID
	})
}

func rateLimitHandler(limiter *SlidingWindowLimiter, limit int, exceededMessage string, keyFor func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFor(c)

		allowed, remaining, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis is unavailable; fail open but surface it for the
			// request's own logging middleware to pick up.
			c.Set("rate_limit_error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(retryAfter).Unix()))

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       exceededMessage,
				"message":     fmt.Sprintf("rate limit exceeded, please try again in %d seconds", int(retryAfter.Seconds())),
				"retry_after": int(retryAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}

// ResetLoginRateLimit clears the login rate limit recorded for an IP.
func ResetLoginRateLimit(redisClient *redis.Client, clientIP string) error {
	limiter := NewSlidingWindowLimiter(redisClient, DefaultLoginRateLimit, DefaultRateLimitWindow, "login_rate_limit")
	return limiter.Reset(context.Background(), clientIP)
}
