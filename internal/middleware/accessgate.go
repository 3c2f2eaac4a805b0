package middleware

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/easynews/core/internal/config"
	"github.com/easynews/core/internal/pkg/ratelimit"
	"github.com/easynews/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the caller's key on read requests.
const APIKeyHeader = "X-API-Key"

// AccessGate guards the read API. Checks run in a fixed order and
// short-circuit: global enable flag, then API key, then per-client rate limit.
func AccessGate(api config.APIConfig, limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !api.Enabled {
			response.Forbidden(c, "API access is disabled")
			return
		}

		if api.KeyRequired && !keyMatches(c.GetHeader(APIKeyHeader), api.Key) {
			response.Unauthorized(c, "Invalid or missing API key")
			return
		}

		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			response.RateLimited(c, limiter.Limit(), windowLabel(limiter.Window()))
			return
		}

		c.Next()
	}
}

func keyMatches(provided, expected string) bool {
	if provided == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

func windowLabel(window time.Duration) string {
	if window == time.Hour {
		return "1 hour"
	}
	if window%time.Hour == 0 {
		return fmt.Sprintf("%d hours", window/time.Hour)
	}
	return window.String()
}
