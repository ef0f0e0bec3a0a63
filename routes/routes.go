package routes

import (
	"time"

	"accountcleanup/handlers"
	"accountcleanup/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes registers the auth event trigger surface.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	events := r.Group("/events/auth")
	{
		events.Use(middleware.EventAuthMiddleware(hb.EventSigningSecret, hb.Logger))
		events.POST("/user-deleted", hb.UserDeletedHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin, hb.Logger))
		adminGroup.Use(middleware.AdminAuthMiddleware(hb.AdminToken))
		adminGroup.DELETE("/users/:uid", hb.AdminHandler.DeleteUserHandler)
	}
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/healthz", hb.HealthHandler)
	r.GET("/metrics", hb.MetricsHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Ce-Id"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterEventRoutes(r, hb)
	if hb.AdminHandler != nil {
		RegisterAdminRoutes(r, hb)
	}
	RegisterHealthRoute(r, hb)
}
