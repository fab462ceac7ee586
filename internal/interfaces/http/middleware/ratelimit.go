package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/infrastructure/ratelimit"
	"github.com/buildingai/cozepkg/internal/shared/utils"
)

// RateLimit rejects requests over the per client IP budget with 429.
func RateLimit(limiter ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
