package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horarios/utils"
)

// NewHealthHandler reports the latest snapshot of the health monitor.
func NewHealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	}
}
