package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type QueryPayResultCommand struct {
	OrderID string
	OrderNo string
	// UserID scopes the lookup; empty for trusted callers.
	UserID string
}

// QueryPayResultUseCase polls the gateway for an unsettled order and
// applies the settlement. Settled orders are answered locally.
type QueryPayResultUseCase struct {
	orderRepo cozepackage.OrderRepository
	gateways  paymentgateway.Selector
	clock     biztime.Clock
	recorder  OrderRecorder
	logger    logger.Interface
}

func NewQueryPayResultUseCase(
	orderRepo cozepackage.OrderRepository,
	gateways paymentgateway.Selector,
	clock biztime.Clock,
	recorder OrderRecorder,
	logger logger.Interface,
) *QueryPayResultUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &QueryPayResultUseCase{
		orderRepo: orderRepo,
		gateways:  gateways,
		clock:     clock,
		recorder:  recorder,
		logger:    logger,
	}
}

func (uc *QueryPayResultUseCase) Execute(ctx context.Context, cmd QueryPayResultCommand) (*dto.PayResultDTO, error) {
	if cmd.OrderID == "" && cmd.OrderNo == "" {
		return nil, apperrors.NewValidationError("orderId or orderNo is required")
	}

	order, err := uc.orderRepo.GetForUser(ctx, cmd.OrderID, cmd.OrderNo, cmd.UserID)
	if err != nil {
		return nil, toAppError(fmt.Errorf("failed to get order: %w", err))
	}
	if order.IsSettled() {
		return &dto.PayResultDTO{PayStatus: dto.PayStatusPaid}, nil
	}

	gateway, err := uc.gateways.For(order.PaymentMethod().String())
	if err != nil {
		return nil, toAppError(err)
	}

	result, err := gateway.QueryPayment(ctx, order.OrderNo())
	if err != nil {
		uc.logger.Errorw("failed to query payment", "gateway", gateway.Name(), "order_no", order.OrderNo(), "error", err)
		return nil, fmt.Errorf("failed to query %s payment: %w", gateway.Name(), err)
	}
	if !result.Settled() {
		return &dto.PayResultDTO{PayStatus: dto.PayStatusUnpaid}, nil
	}

	if err := settleOrder(ctx, uc.orderRepo, order, result.TransactionID, result.PaidAt, uc.clock, uc.recorder, uc.logger); err != nil {
		return nil, err
	}
	return &dto.PayResultDTO{PayStatus: dto.PayStatusPaid}, nil
}

// settleOrder applies a gateway success and persists it. An order that is
// already settled is left untouched.
func settleOrder(
	ctx context.Context,
	repo cozepackage.OrderRepository,
	order *cozepackage.Order,
	txnID string,
	paidAt *time.Time,
	clock biztime.Clock,
	recorder OrderRecorder,
	log logger.Interface,
) error {
	at := clock.Now()
	if paidAt != nil && !paidAt.IsZero() {
		at = paidAt.UTC()
	}

	if !order.MarkPaid(txnID, at) {
		return nil
	}
	if err := repo.Update(ctx, order); err != nil {
		log.Errorw("failed to persist settlement", "order_no", order.OrderNo(), "error", err)
		return fmt.Errorf("failed to persist settlement: %w", err)
	}

	recorder.OrderPaid(order.PaymentMethod().String(), order.PaidAmount().Fen())
	log.Infow("order settled",
		"order_no", order.OrderNo(),
		"transaction_id", txnID,
		"paid_amount", order.PaidAmount().Fen())
	return nil
}
