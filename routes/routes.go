package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"horarios/handlers"
)

// RegisterTeacherRoutes registers the form submission and download endpoints.
func RegisterTeacherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/profesores", hb.SubmitProfileHandler)
		api.GET("/profesores/reporte.xlsx", hb.ExportWorkbookHandler)
		api.GET("/registros_completados", hb.ListCompletedHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string) {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	corsCfg := cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID", "X-Requested-By"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin.
	corsCfg.AllowCredentials = !(len(allowOrigins) == 1 && allowOrigins[0] == "*")
	r.Use(cors.New(corsCfg))

	RegisterTeacherRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
