package routes

import (
	"evervoice_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all HTTP routes under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.VoiceHandler.RegisterRoutes(api)
		appHandlers.VideoHandler.RegisterRoutes(api)
		if appHandlers.FileHandler != nil {
			appHandlers.FileHandler.RegisterRoutes(api)
		}
	}
}
