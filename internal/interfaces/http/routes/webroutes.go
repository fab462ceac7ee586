package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/interfaces/http/handlers"
	"github.com/buildingai/cozepkg/internal/interfaces/http/middleware"
)

// WebRouteConfig holds dependencies for the public /api routes.
type WebRouteConfig struct {
	CenterHandler  *handlers.PackageCenterHandler
	NotifyHandler  *handlers.PaymentNotifyHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc
}

// SetupWebRoutes configures /api/coze-package.
func SetupWebRoutes(engine *gin.Engine, cfg *WebRouteConfig) {
	pkg := engine.Group("/api/coze-package")

	// Gateway callbacks are neither authenticated nor rate limited.
	pkg.POST("/pay/notify/wechat", cfg.NotifyHandler.WechatNotify)

	limited := pkg.Group("")
	if cfg.RateLimit != nil {
		limited.Use(cfg.RateLimit)
	}

	limited.GET("/center", cfg.AuthMiddleware.OptionalAuth(), cfg.CenterHandler.GetCenter)

	authed := limited.Group("")
	authed.Use(cfg.AuthMiddleware.RequireAuth())
	{
		authed.POST("/order", cfg.CenterHandler.CreateOrder)

		pay := authed.Group("/pay")
		{
			pay.POST("/prepay", cfg.CenterHandler.Prepay)
			pay.GET("/queryPayResult", cfg.CenterHandler.QueryPayResult)
		}

		user := authed.Group("/user")
		{
			user.GET("/current-package", cfg.CenterHandler.GetCurrentPackage)
			user.GET("/has-active-package", cfg.CenterHandler.HasActivePackage)
			user.GET("/remaining-days", cfg.CenterHandler.GetRemainingDays)
		}
	}
}
