package routes

import (
	"net/http"

	"botrabota_backend/internal/handlers"
	"botrabota_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	adminID int64,
	webhookPath string,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	appHandlers.PaymentHandler.RegisterWebhookRoutes(ginRouter, webhookPath)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.VacancyHandler.RegisterRoutes(api)
		appHandlers.FeedHandler.RegisterRoutes(api)
		appHandlers.PaymentHandler.RegisterRoutes(api)
		appHandlers.GeoHandler.RegisterRoutes(api)
	}

	admin := ginRouter.Group("/api/v1/admin")
	admin.Use(middleware.AdminOnly(adminID))
	{
		appHandlers.AdminHandler.RegisterRoutes(admin)
	}
}
