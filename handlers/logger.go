package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"horarios/middleware"
)

// getLogger retrieves the request scoped logger or falls back to the handler's own.
func getLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}
