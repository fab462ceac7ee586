package http

import (
	"strings"

	cozeUsecases "github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	userUsecases "github.com/buildingai/cozepkg/internal/application/user/usecases"
	"github.com/buildingai/cozepkg/internal/domain/shared/services"
	"github.com/buildingai/cozepkg/internal/shared/services/markdown"
)

const wechatNotifyPath = "/api/coze-package/pay/notify/wechat"

type allUseCases struct {
	login *userUsecases.LoginWithPasswordUseCase

	getPackageConfig *cozeUsecases.GetPackageConfigUseCase
	setPackageConfig *cozeUsecases.SetPackageConfigUseCase

	listOrders    *cozeUsecases.ListOrdersUseCase
	getOrder      *cozeUsecases.GetOrderUseCase
	statistics    *cozeUsecases.GetStatisticsUseCase
	requestRefund *cozeUsecases.RequestRefundUseCase

	activePackage  *cozeUsecases.GetActivePackageUseCase
	packageCenter  *cozeUsecases.GetPackageCenterUseCase
	createOrder    *cozeUsecases.CreateOrderUseCase
	prepayOrder    *cozeUsecases.PrepayOrderUseCase
	queryPayResult *cozeUsecases.QueryPayResultUseCase
	paymentNotify  *cozeUsecases.HandlePaymentNotifyUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	orderNumbers := services.NewOrderNumberGeneratorWithClock(c.clock)

	ucs := &allUseCases{}

	ucs.login = userUsecases.NewLoginWithPasswordUseCase(r.user, c.hasher, c.jwtSvc, log)

	ucs.getPackageConfig = cozeUsecases.NewGetPackageConfigUseCase(r.packageConfig, c.settings, log)
	ucs.setPackageConfig = cozeUsecases.NewSetPackageConfigUseCase(r.packageConfig, c.settings, c.txManager, c.centerInvalidator, log)

	ucs.listOrders = cozeUsecases.NewListOrdersUseCase(r.order, log)
	ucs.getOrder = cozeUsecases.NewGetOrderUseCase(r.order, log)
	ucs.statistics = cozeUsecases.NewGetStatisticsUseCase(r.order, log)
	ucs.requestRefund = cozeUsecases.NewRequestRefundUseCase(r.order, c.txManager, c.refunds, c.clock, c.metrics, log)

	ucs.activePackage = cozeUsecases.NewGetActivePackageUseCase(r.order, c.clock, log)
	ucs.packageCenter = cozeUsecases.NewGetPackageCenterUseCase(
		r.packageConfig, r.payConfig, c.settings, c.centerCache, markdown.NewRenderer(), ucs.activePackage, log,
	)
	ucs.createOrder = cozeUsecases.NewCreateOrderUseCase(r.order, r.packageConfig, orderNumbers, c.clock, c.metrics, log)
	ucs.prepayOrder = cozeUsecases.NewPrepayOrderUseCase(
		r.order, c.gateways.Registry, c.clock, log, cozeUsecases.PrepayConfig{NotifyURL: c.notifyURL()},
	)
	ucs.queryPayResult = cozeUsecases.NewQueryPayResultUseCase(r.order, c.gateways.Registry, c.clock, c.metrics, log)
	ucs.paymentNotify = cozeUsecases.NewHandlePaymentNotifyUseCase(r.order, c.gateways.Notify, c.clock, c.metrics, log)

	c.ucs = ucs
}

// notifyURL is where gateways push settlement notifications. The explicit
// gateway setting wins over the server's public base URL.
func (c *Container) notifyURL() string {
	if u := c.cfg.Payment.Wechat.NotifyURL; u != "" {
		return u
	}
	if c.cfg.Server.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(c.cfg.Server.BaseURL, "/") + wechatNotifyPath
}
