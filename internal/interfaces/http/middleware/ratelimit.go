package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deviceauth/internal/infrastructure/ratelimit"
	"deviceauth/internal/shared/logger"
	"deviceauth/internal/shared/utils"
)

// LoginRateLimit throttles credential-bearing endpoints per client IP.
// Limiter failures fail open; losing redis must not lock everyone out.
func LoginRateLimit(limiter ratelimit.RateLimiter, limits ratelimit.Limits, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "login:" + c.ClientIP()

		allowed, err := limiter.Allow(key, limits)
		if err != nil {
			log.Errorw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			log.Warnw("login rate limit exceeded", "client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
