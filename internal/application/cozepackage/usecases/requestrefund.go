package usecases

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/db"
	"github.com/buildingai/cozepkg/internal/shared/goroutine"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

const refundSubmittedMessage = "Refund request submitted and awaiting review"

type RequestRefundCommand struct {
	RequesterID  string
	OrderID      string
	Reason       string
	CustomReason string
	RefundAmount *float64
	Remark       string
}

type RequestRefundUseCase struct {
	orderRepo cozepackage.OrderRepository
	txManager db.Transactor
	notifier  RefundNotifier
	clock     biztime.Clock
	recorder  OrderRecorder
	logger    logger.Interface
}

func NewRequestRefundUseCase(
	orderRepo cozepackage.OrderRepository,
	txManager db.Transactor,
	notifier RefundNotifier,
	clock biztime.Clock,
	recorder OrderRecorder,
	logger logger.Interface,
) *RequestRefundUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RequestRefundUseCase{
		orderRepo: orderRepo,
		txManager: txManager,
		notifier:  notifier,
		clock:     clock,
		recorder:  recorder,
		logger:    logger,
	}
}

// Execute records the request only. The gateway refund happens after an
// operator approves it.
func (uc *RequestRefundUseCase) Execute(ctx context.Context, cmd RequestRefundCommand) (*dto.RefundResultDTO, error) {
	req := cozepackage.RefundRequest{
		RequesterID:  cmd.RequesterID,
		Reason:       cmd.Reason,
		CustomReason: cmd.CustomReason,
		Remark:       cmd.Remark,
	}
	if cmd.RefundAmount != nil {
		amount, err := vo.MoneyFromYuan(*cmd.RefundAmount)
		if err != nil {
			return nil, toAppError(err)
		}
		req.Amount = &amount
	}

	var order *cozepackage.Order
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetByID(txCtx, cmd.OrderID)
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if err := order.RequestRefund(req, uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to save refund request: %w", err)
		}
		return nil
	})
	if err != nil {
		appErr := toAppError(err)
		if appErr == err {
			uc.logger.Errorw("failed to request refund", "order_id", cmd.OrderID, "error", err)
		} else {
			uc.logger.Warnw("refund request rejected", "order_id", cmd.OrderID, "requester", cmd.RequesterID, "error", err)
		}
		return nil, appErr
	}

	uc.recorder.RefundRequested()
	uc.logger.Infow("refund requested",
		"order_no", order.OrderNo(),
		"requester", cmd.RequesterID,
		"amount", order.RefundAmount().Fen())

	uc.notify(order)

	return &dto.RefundResultDTO{
		OrderID:      order.ID(),
		OrderNo:      order.OrderNo(),
		RefundStatus: order.RefundStatus().String(),
		RefundAmount: order.RefundAmount().Yuan(),
		Message:      refundSubmittedMessage,
	}, nil
}

func (uc *RequestRefundUseCase) notify(order *cozepackage.Order) {
	if uc.notifier == nil {
		return
	}

	notice := RefundNotice{
		OrderID:      order.ID(),
		OrderNo:      order.OrderNo(),
		UserID:       order.UserID(),
		PackageName:  order.PackageName(),
		RefundAmount: order.RefundAmount().String(),
	}
	if order.RefundReason() != nil {
		notice.Reason = *order.RefundReason()
	}

	goroutine.SafeGo(uc.logger, "refund-notify", func() {
		if err := uc.notifier.NotifyRefundRequested(context.Background(), notice); err != nil {
			uc.logger.Warnw("failed to send refund notification", "order_no", notice.OrderNo, "error", err)
		}
	})
}
