package api

import (
	alertDelivery "hqadmin-backend/internal/alert/delivery"
	alertUsecasePkg "hqadmin-backend/internal/alert/usecase"
	authUsecasePkg "hqadmin-backend/internal/auth/usecase"
	pushDelivery "hqadmin-backend/internal/push/delivery"
	pushUsecasePkg "hqadmin-backend/internal/push/usecase"
	"hqadmin-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecasePkg.AuthUsecase
	pushHandler *pushDelivery.PushHandler
	scanHandler *alertDelivery.ScanHandler
	config      *config.Config
}

func NewHandler(authUc authUsecasePkg.AuthUsecase, pushUc pushUsecasePkg.PushUsecase, scanUc alertUsecasePkg.ScanUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		pushHandler: pushDelivery.NewPushHandler(pushUc),
		scanHandler: alertDelivery.NewScanHandler(scanUc),
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.pushHandler, h.scanHandler)

	return r.Run(addr)
}
