package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig defines rate limiting rules
type RateLimiterConfig struct {
	MaxRequests int           // requests allowed per window
	Window      time.Duration // counting window
	BlockTime   time.Duration // how long a client stays blocked after exceeding the limit
}

// RateLimiter is a fixed-window, per-IP limiter backed by Redis, so limits
// hold across several API processes.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimiterConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Middleware limits requests per client IP. scope separates the counters
// of different route groups.
func (rl *RateLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter, err := rl.CheckLimit(c.Request.Context(), scope, clientIP)
		if err != nil {
			// fail open: Redis trouble must not take the site down
			logger.Log.Warn("Rate limiter unavailable",
				zap.String("scope", scope),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":    "Too many requests. Please try again later.",
				"retryAfter": seconds,
			})
			return
		}

		c.Next()
	}
}

// CheckLimit counts one request and reports whether it may proceed and,
// if not, how long the client should wait.
func (rl *RateLimiter) CheckLimit(ctx context.Context, scope, ip string) (bool, time.Duration, error) {
	blockKey := fmt.Sprintf("ratelimit:%s:blocked:%s", scope, ip)
	countKey := fmt.Sprintf("ratelimit:%s:count:%s", scope, ip)

	ttl, err := rl.redis.TTL(ctx, blockKey).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl > 0 {
		return false, ttl, nil
	}

	count, err := rl.redis.Incr(ctx, countKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, countKey, rl.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.config.MaxRequests) {
		if err := rl.redis.Set(ctx, blockKey, 1, rl.config.BlockTime).Err(); err != nil {
			return false, 0, err
		}
		rl.redis.Del(ctx, countKey)
		return false, rl.config.BlockTime, nil
	}

	return true, 0, nil
}
