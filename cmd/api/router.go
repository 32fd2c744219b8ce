package api

import (
	"net/http"

	alertDelivery "hqadmin-backend/internal/alert/delivery"
	"hqadmin-backend/internal/auth/delivery"
	authUsecase "hqadmin-backend/internal/auth/usecase"
	pushDelivery "hqadmin-backend/internal/push/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, pushHandler *pushDelivery.PushHandler, scanHandler *alertDelivery.ScanHandler) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// FCM routes (protected): token registry, template preview, test
		// sends, per-member preferences and the send-log viewer
		fcm := api.Group("/fcm")
		fcm.Use(delivery.AuthMiddleware(authUsecase))
		{
			fcm.POST("/register", pushHandler.RegisterToken)
			fcm.DELETE("/register/:token", pushHandler.UnregisterToken)
			fcm.POST("/template/preview", pushHandler.PreviewTemplate)
			fcm.POST("/send/test", pushHandler.SendTest)
			fcm.GET("/pref/me", pushHandler.GetMyPreference)
			fcm.POST("/pref/me", pushHandler.UpdateMyPreference)
			fcm.GET("/logs", pushHandler.RecentLogs)
		}

		// HQ scan routes (protected): manual triggers for the inventory
		// alert pipeline
		scan := api.Group("/hq-scan")
		scan.Use(delivery.AuthMiddleware(authUsecase))
		{
			scan.POST("/run", scanHandler.RunAll)
			scan.POST("/stock-low", scanHandler.RunStockLow)
			scan.POST("/expire-soon", scanHandler.RunExpireSoon)
			scan.POST("/reminder", scanHandler.SendReminder)
		}
	}
}
