package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/interfaces/http/handlers"
	"github.com/buildingai/cozepkg/internal/interfaces/http/middleware"
)

// ConsoleRouteConfig holds dependencies for the admin console routes.
type ConsoleRouteConfig struct {
	AuthHandler          *handlers.AuthHandler
	PackageConfigHandler *handlers.PackageConfigHandler
	OrderHandler         *handlers.OrderHandler
	MenuHandler          *handlers.MenuHandler
	AuthMiddleware       *middleware.AuthMiddleware
	Permissions          *PermissionRegistry
}

// SetupConsoleRoutes configures /consoleapi. Everything but login requires
// a token and the route's permission code.
func SetupConsoleRoutes(engine *gin.Engine, cfg *ConsoleRouteConfig) {
	console := engine.Group("/consoleapi")

	console.POST("/auth/login", cfg.AuthHandler.Login)

	protected := console.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		pkgConfig := protected.Group("/coze-package-config")
		{
			pkgConfig.GET("", cfg.Permissions.Require(permission.CodePackageGetConfig), cfg.PackageConfigHandler.GetConfig)
			pkgConfig.POST("", cfg.Permissions.Require(permission.CodePackageSetConfig), cfg.PackageConfigHandler.SetConfig)
		}

		orders := protected.Group("/coze-package-order")
		{
			// Static paths before /:id.
			orders.GET("", cfg.Permissions.Require(permission.CodeOrderList), cfg.OrderHandler.ListOrders)
			orders.GET("/statistics", cfg.Permissions.Require(permission.CodeOrderStatistics), cfg.OrderHandler.GetStatistics)
			orders.POST("/refund", cfg.Permissions.Require(permission.CodeOrderRefund), cfg.OrderHandler.RequestRefund)
			orders.GET("/:id", cfg.Permissions.Require(permission.CodeOrderDetail), cfg.OrderHandler.GetOrder)
		}

		protected.GET("/menu/tree", cfg.Permissions.Require(permission.CodeMenuTree), cfg.MenuHandler.GetTree)
	}
}
