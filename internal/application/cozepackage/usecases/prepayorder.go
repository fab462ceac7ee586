package usecases

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// PrepayAttach is echoed back by the gateway so callbacks can be routed.
const PrepayAttach = "from=coze"

type PrepayOrderCommand struct {
	UserID  string
	OrderID string
}

type PrepayConfig struct {
	NotifyURL string
}

type PrepayOrderUseCase struct {
	orderRepo cozepackage.OrderRepository
	gateways  paymentgateway.Selector
	clock     biztime.Clock
	logger    logger.Interface
	config    PrepayConfig
}

func NewPrepayOrderUseCase(
	orderRepo cozepackage.OrderRepository,
	gateways paymentgateway.Selector,
	clock biztime.Clock,
	logger logger.Interface,
	config PrepayConfig,
) *PrepayOrderUseCase {
	return &PrepayOrderUseCase{
		orderRepo: orderRepo,
		gateways:  gateways,
		clock:     clock,
		logger:    logger,
		config:    config,
	}
}

// Execute issues a fresh payment payload for a pending order owned by the
// user. Calling it again replaces the payload on the same order.
func (uc *PrepayOrderUseCase) Execute(ctx context.Context, cmd PrepayOrderCommand) (*dto.PrepayDTO, error) {
	order, err := uc.orderRepo.GetForUser(ctx, cmd.OrderID, "", cmd.UserID)
	if err != nil {
		return nil, toAppError(fmt.Errorf("failed to get order: %w", err))
	}
	if order.OrderStatus() != vo.OrderStatusPending {
		return nil, toAppError(cozepackage.ErrOrderNotPending)
	}

	gateway, err := uc.gateways.For(order.PaymentMethod().String())
	if err != nil {
		return nil, toAppError(err)
	}

	resp, err := gateway.CreatePayment(ctx, paymentgateway.CreatePaymentRequest{
		OrderNo:   order.OrderNo(),
		Amount:    order.TotalAmount().Sub(order.DiscountAmount()).Fen(),
		Subject:   order.PackageName(),
		Attach:    PrepayAttach,
		NotifyURL: uc.config.NotifyURL,
	})
	if err != nil {
		uc.logger.Errorw("failed to create payment in gateway",
			"gateway", gateway.Name(),
			"order_no", order.OrderNo(),
			"error", err)
		return nil, fmt.Errorf("failed to create payment in gateway: %w", err)
	}

	if err := order.AttachPrepay(resp.CodeURL, uc.clock.Now()); err != nil {
		return nil, toAppError(err)
	}
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		uc.logger.Errorw("failed to save prepay payload", "order_no", order.OrderNo(), "error", err)
		return nil, fmt.Errorf("failed to save prepay payload: %w", err)
	}

	uc.logger.Infow("prepay issued", "order_no", order.OrderNo(), "gateway", gateway.Name())
	return &dto.PrepayDTO{CodeURL: resp.CodeURL}, nil
}
