package http

import (
	"context"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/interfaces/http/handlers"
)

type allHandlers struct {
	auth          *handlers.AuthHandler
	packageConfig *handlers.PackageConfigHandler
	order         *handlers.OrderHandler
	menu          *handlers.MenuHandler
	center        *handlers.PackageCenterHandler
	notify        *handlers.PaymentNotifyHandler
	health        *handlers.HealthHandler
}

func newHandlers(c *Container) *allHandlers {
	ucs := c.ucs
	log := c.log

	return &allHandlers{
		auth:          handlers.NewAuthHandler(ucs.login, log),
		packageConfig: handlers.NewPackageConfigHandler(ucs.getPackageConfig, ucs.setPackageConfig, log),
		order:         handlers.NewOrderHandler(ucs.listOrders, ucs.getOrder, ucs.statistics, ucs.requestRefund, log),
		menu:          handlers.NewMenuHandler(c.repos.menu, log),
		center: handlers.NewPackageCenterHandler(
			ucs.packageCenter, ucs.createOrder, ucs.prepayOrder, ucs.queryPayResult, ucs.activePackage, log,
		),
		notify: handlers.NewPaymentNotifyHandler(ucs.paymentNotify, log),
		health: handlers.NewHealthHandler(gormPinger{db: c.db}, c.AppVersion()),
	}
}

// gormPinger exposes the pool behind a gorm handle to the health check.
type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) PingContext(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
