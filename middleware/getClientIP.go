package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP identifies the caller for rate limiting. The form is served behind
// a reverse proxy, so the first X-Forwarded-For hop wins over the socket address.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	return c.ClientIP()
}
