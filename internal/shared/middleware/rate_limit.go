package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sharedContext "github.com/enslabs/clubs-admin-api/internal/shared/context"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyPrefix         string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 120,
		KeyPrefix:         "api:ratelimit:",
	}
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
else
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local reset_at = 0
    if #oldest >= 2 then
        reset_at = tonumber(oldest[2]) + window
    end
    return {0, 0, reset_at}
end
`)

// RateLimit returns a gin middleware that rate limits by client IP.
// With a nil redis client it is a no-op, and redis errors fail open.
func RateLimit(redisClient *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + c.ClientIP()

		allowed, remaining, resetAt, err := runLimiter(c, redisClient, key, cfg.RequestsPerMinute)
		if err != nil {
			// Fail open: allow request if Redis error
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			now := time.Now().UnixMilli()
			retryAfter := (resetAt - now) / 1000
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt/1000))
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			respondRateLimited(c)
			return
		}

		c.Next()
	}
}

// RateLimitPerActor returns a rate limiter keyed by the authenticated wallet
// address, falling back to client IP for unauthenticated requests.
func RateLimitPerActor(redisClient *redis.Client, requestsPerMinute int) gin.HandlerFunc {
	keyPrefix := "api:ratelimit:actor:"

	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		actor, ok := sharedContext.GetActorAddress(c)
		if !ok {
			actor = "ip:" + c.ClientIP()
		}

		allowed, remaining, _, err := runLimiter(c, redisClient, keyPrefix+actor, requestsPerMinute)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerMinute))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			respondRateLimited(c)
			return
		}

		c.Next()
	}
}

func runLimiter(c *gin.Context, redisClient *redis.Client, key string, limit int) (allowed bool, remaining, resetAt int64, err error) {
	now := time.Now().UnixMilli()
	windowMs := int64(60 * 1000) // 1 minute

	result, err := rateLimitScript.Run(c.Request.Context(), redisClient, []string{key},
		limit, windowMs, now,
	).Int64Slice()
	if err != nil || len(result) != 3 {
		return false, 0, 0, fmt.Errorf("rate limit script: %w", err)
	}

	return result[0] == 1, result[1], result[2], nil
}

func respondRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, sharedError.ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Code:    "RATE-001",
		Message: "Too many requests. Please try again shortly.",
	})
}
