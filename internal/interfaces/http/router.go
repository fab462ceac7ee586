package http

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/buildingai/cozepkg/docs"
	"github.com/buildingai/cozepkg/internal/infrastructure/config"
	"github.com/buildingai/cozepkg/internal/interfaces/http/middleware"
	"github.com/buildingai/cozepkg/internal/interfaces/http/routes"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// Router is the HTTP surface over a fully wired Container.
type Router struct {
	*Container
}

// NewRouter wires the container. Call SetupRoutes before serving.
func NewRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(ctx, db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log.Named("http")))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	if r.cfg.Metrics.Enabled {
		r.engine.Use(middleware.Metrics(r.metrics))
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	r.engine.GET("/health", r.hdlrs.health.HealthCheck)
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupConsoleRoutes(r.engine, &routes.ConsoleRouteConfig{
		AuthHandler:          r.hdlrs.auth,
		PackageConfigHandler: r.hdlrs.packageConfig,
		OrderHandler:         r.hdlrs.order,
		MenuHandler:          r.hdlrs.menu,
		AuthMiddleware:       r.authMiddleware,
		Permissions:          r.permissionRegistry,
	})

	routes.SetupWebRoutes(r.engine, &routes.WebRouteConfig{
		CenterHandler:  r.hdlrs.center,
		NotifyHandler:  r.hdlrs.notify,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      middleware.RateLimit(r.limiter),
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
