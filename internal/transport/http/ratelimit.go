package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitConfig bounds accepted requests per client address per window.
type RateLimitConfig struct {
	Enabled  bool
	Capacity int
	Window   time.Duration
}

// limiterScript counts requests in a fixed window keyed by client IP.
// The first hit arms the window expiry; a hit past capacity is denied
// with the remaining window as retry hint.
var limiterScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[2])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	local capacity = tonumber(ARGV[1])
	if current > capacity then
		return { 0, 0, ttl }
	end
	return { 1, capacity - current, ttl }
`)

// RateLimit returns a middleware limiting each client IP to cfg.Capacity
// requests per cfg.Window, with state in Redis. When disabled or when rdb
// is nil it is a passthrough, and it fails open on Redis errors: the
// limiter protects the service, it must never take it down.
func RateLimit(cfg RateLimitConfig, rdb *redis.Client, logger *zerolog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		vals, err := limiterScript.Run(
			c.Request.Context(), rdb,
			[]string{key},
			cfg.Capacity, cfg.Window.Milliseconds(),
		).Result()
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("rate limiter redis error, allowing request")
			c.Next()
			return
		}

		arr, ok := vals.([]interface{})
		if !ok || len(arr) != 3 {
			logger.Warn().Str("key", key).Msgf("unexpected rate limiter result: %#v", vals)
			c.Next()
			return
		}

		allowed := asInt64(arr[0]) == 1
		remaining := asInt64(arr[1])
		retryMs := asInt64(arr[2])

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			if secs < 0 {
				secs = 0
			}
			c.Writer.Header().Set("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests"})
			return
		}

		c.Next()
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	n, _ := strconv.ParseInt(fmt.Sprint(v), 10, 64)
	return n
}
