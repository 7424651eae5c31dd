// File: horarios/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Teacher endpoints
	SubmitProfileHandler  gin.HandlerFunc
	ListCompletedHandler  gin.HandlerFunc
	ExportWorkbookHandler gin.HandlerFunc

	// Health
	HealthHandler gin.HandlerFunc
}
