package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	settingApp "github.com/buildingai/cozepkg/internal/application/setting"
	"github.com/buildingai/cozepkg/internal/infrastructure/auth"
	"github.com/buildingai/cozepkg/internal/infrastructure/cache"
	"github.com/buildingai/cozepkg/internal/infrastructure/config"
	"github.com/buildingai/cozepkg/internal/infrastructure/email"
	"github.com/buildingai/cozepkg/internal/infrastructure/metrics"
	infraPayment "github.com/buildingai/cozepkg/internal/infrastructure/payment"
	infraPermission "github.com/buildingai/cozepkg/internal/infrastructure/permission"
	"github.com/buildingai/cozepkg/internal/infrastructure/pubsub"
	"github.com/buildingai/cozepkg/internal/infrastructure/ratelimit"
	"github.com/buildingai/cozepkg/internal/interfaces/http/middleware"
	"github.com/buildingai/cozepkg/internal/interfaces/http/routes"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/db"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

const limiterSweepInterval = 5 * time.Minute

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and releases background resources
// in Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	clock  biztime.Clock

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	permissionRegistry   *routes.PermissionRegistry
	limiter              *ratelimit.KeyedLimiter
	limiterStop          chan struct{}

	// Shared services
	settings    *settingApp.Store
	txManager   *db.TransactionManager
	hasher      *auth.BcryptPasswordHasher
	jwtSvc      *auth.JWTService
	permissions *apppermission.Service
	metrics     *metrics.Collector
	gateways    *infraPayment.Gateways
	refunds     *email.RefundNotifier

	// Package center cache and its cross-instance invalidation
	centerCache       usecases.PackageCenterCache
	centerInvalidator usecases.CenterInvalidator
	configEventBus    *pubsub.RedisConfigEventBus
	eventBusCancel    context.CancelFunc
	eventBusCancelMu  sync.Mutex

	shutdownOnce sync.Once
}

// NewContainer wires every component. ctx bounds the startup work only.
func NewContainer(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		clock:  biztime.SystemClock(),
	}

	// Section 1: Infrastructure - Redis, Repositories, Basic Services
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Payments - Gateways, Notifiers
	if err := c.initPayments(ctx); err != nil {
		return nil, err
	}

	// Section 3: Use cases
	c.initUseCases()

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	if err := c.initRedis(ctx); err != nil {
		return err
	}

	c.repos = newRepositories(c.db, c.log)
	c.settings = settingApp.NewStore(c.repos.dict, c.log.Named("setting"))
	c.txManager = db.NewTransactionManager(c.db)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessTTL(), c.cfg.Auth.JWT.Issuer)
	c.metrics = metrics.NewCollector()

	enforcer, err := infraPermission.NewEnforcer(c.db, c.log.Named("casbin"))
	if err != nil {
		return fmt.Errorf("failed to init permission enforcer: %w", err)
	}
	c.permissions = apppermission.NewService(c.repos.permission, enforcer, c.log.Named("permission"))

	c.initCenterCache(ctx)

	c.limiter = ratelimit.NewKeyedLimiter(c.cfg.RateLimit.RPS, c.cfg.RateLimit.Burst, c.clock)
	c.limiterStop = make(chan struct{})
	c.limiter.StartSweeper(limiterSweepInterval, c.limiterStop)

	return nil
}

// initRedis connects to Redis when one is configured. Redis is only
// required by the redis cache driver; otherwise the app runs without it.
func (c *Container) initRedis(ctx context.Context) error {
	if c.cfg.Redis.Host == "" {
		return c.requireRedis(fmt.Errorf("redis host not configured"))
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return c.requireRedis(err)
	}

	c.redis = client
	c.log.Infow("redis connected", "addr", c.cfg.Redis.GetAddr())
	return nil
}

func (c *Container) requireRedis(cause error) error {
	if c.cfg.Cache.Driver == sharedConfig.CacheDriverRedis {
		return fmt.Errorf("redis cache driver selected but redis unavailable: %w", cause)
	}
	c.log.Warnw("redis unavailable, package center cache stays process-local", "error", cause)
	return nil
}

// initCenterCache picks the package center cache. A process-local cache is
// invalidated across instances through Redis pub/sub when Redis is up.
func (c *Container) initCenterCache(ctx context.Context) {
	ttl := c.cfg.Cache.TTL()

	if c.cfg.Cache.Driver == sharedConfig.CacheDriverRedis && c.redis != nil {
		redisCache := cache.NewRedisPackageCenterCache(c.redis, ttl, c.log.Named("center-cache"))
		c.centerCache = redisCache
		c.centerInvalidator = redisCache
		return
	}

	memCache := cache.NewMemoryPackageCenterCache(ttl, c.clock)
	c.centerCache = memCache
	c.centerInvalidator = memCache

	if c.redis == nil {
		return
	}

	c.configEventBus = pubsub.NewRedisConfigEventBus(c.redis, memCache, c.log.Named("config-events"))
	c.centerInvalidator = c.configEventBus

	busCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.eventBusCancelMu.Lock()
	c.eventBusCancel = cancel
	c.eventBusCancelMu.Unlock()
	c.configEventBus.Start(busCtx)
}

func (c *Container) initPayments(ctx context.Context) error {
	gateways, err := infraPayment.NewGateways(ctx, c.cfg.Payment, c.log.Named("payment"))
	if err != nil {
		return err
	}
	c.gateways = gateways

	mail := email.NewSMTPEmailService(c.cfg.Email)
	c.refunds = email.NewRefundNotifier(mail, c.cfg.Email.RefundNotifyTo, c.log.Named("refund-mail"))
	return nil
}

func (c *Container) initHandlers() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.permissions, c.log)
	c.permissionRegistry = routes.NewPermissionRegistry(c.permissionMiddleware)
	c.hdlrs = newHandlers(c)
}

// Shutdown stops background work and closes Redis. Safe to call twice.
func (c *Container) Shutdown() {
	c.shutdownOnce.Do(func() {
		if c.limiterStop != nil {
			close(c.limiterStop)
		}

		c.eventBusCancelMu.Lock()
		if c.eventBusCancel != nil {
			c.eventBusCancel()
			c.eventBusCancel = nil
		}
		c.eventBusCancelMu.Unlock()

		if c.redis != nil {
			if err := c.redis.Close(); err != nil {
				c.log.Warnw("failed to close redis client", "error", err)
			}
		}
	})
}
