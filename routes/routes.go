package routes

import (
	"time"

	"autoslot/handlers"
	"autoslot/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSlotRoutes registers the provider slot-editor endpoints. Every
// route requires a valid provider bearer token.
func RegisterSlotRoutes(r *gin.Engine, h *handlers.SlotHandler) {
	api := r.Group("/api/slots")
	{
		api.Use(middleware.JWTAuthProviderMiddleware())

		api.POST("/sessions", h.OpenSessionHandler)
		api.GET("/sessions/:sessionID", h.GetSessionHandler)
		api.PATCH("/sessions/:sessionID/hours", h.ToggleHourHandler)
		api.PATCH("/sessions/:sessionID/employees", h.SetEmployeesHandler)
		api.POST("/sessions/:sessionID/commit", h.CommitHandler)
		api.POST("/sessions/:sessionID/discard", h.DiscardHandler)
		api.DELETE("/sessions/:sessionID", h.CloseSessionHandler)

		api.GET("/history", h.HistoryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.SlotHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSlotRoutes(r, h)
	RegisterHealthRoute(r)
}
