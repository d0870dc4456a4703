package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyPrefix         string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 120,
		KeyPrefix:         "arena:ratelimit:ip:",
	}
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting.
// Returns {allowed, remaining, reset_at_ms}.
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
// Without redis, or when redis errors, requests pass.
func RateLimit(redisClient *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || cfg.RequestsPerMinute <= 0 {
			c.Next()
			return
		}
		if !allow(c, redisClient, cfg.KeyPrefix+c.ClientIP(), cfg.RequestsPerMinute) {
			return
		}
		c.Next()
	}
}

// RateLimitPerUser returns a rate limiter keyed by user ID, falling back to the client IP
func RateLimitPerUser(redisClient *redis.Client, requestsPerMinute int) gin.HandlerFunc {
	const prefix = "arena:ratelimit:user:"

	return func(c *gin.Context) {
		if redisClient == nil || requestsPerMinute <= 0 {
			c.Next()
			return
		}
		subject := GetUserID(c)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}
		if !allow(c, redisClient, prefix+subject, requestsPerMinute) {
			return
		}
		c.Next()
	}
}

// allow runs the window script for key. It writes the 429 and aborts when over the limit.
func allow(c *gin.Context, redisClient *redis.Client, key string, limit int) bool {
	now := time.Now().UnixMilli()
	result, err := rateLimitScript.Run(c.Request.Context(), redisClient, []string{key},
		limit, rateLimitWindow.Milliseconds(), now,
	).Int64Slice()
	if err != nil || len(result) < 3 {
		logger.GetLogger().Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(result[1], 10))

	if result[0] == 1 {
		return true
	}

	resetAt := result[2]
	retryAfter := (resetAt - now) / 1000
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt/1000, 10))
	c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
	common.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, slow down", nil)
	c.Abort()
	return false
}
