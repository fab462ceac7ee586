package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

var ErrAmountMismatch = errors.New("notified amount does not match order")

// HandlePaymentNotifyUseCase applies a verified gateway push through the
// same settlement path as polling.
type HandlePaymentNotifyUseCase struct {
	orderRepo cozepackage.OrderRepository
	verifier  paymentgateway.CallbackVerifier
	clock     biztime.Clock
	recorder  OrderRecorder
	logger    logger.Interface
}

func NewHandlePaymentNotifyUseCase(
	orderRepo cozepackage.OrderRepository,
	verifier paymentgateway.CallbackVerifier,
	clock biztime.Clock,
	recorder OrderRecorder,
	logger logger.Interface,
) *HandlePaymentNotifyUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &HandlePaymentNotifyUseCase{
		orderRepo: orderRepo,
		verifier:  verifier,
		clock:     clock,
		recorder:  recorder,
		logger:    logger,
	}
}

func (uc *HandlePaymentNotifyUseCase) Execute(ctx context.Context, req *http.Request) error {
	if uc.verifier == nil {
		return apperrors.NewBadRequestError("payment notifications are not enabled")
	}

	data, err := uc.verifier.VerifyCallback(ctx, req)
	if err != nil {
		uc.logger.Warnw("rejected payment notification", "error", err)
		return apperrors.NewUnauthorizedError("invalid payment notification")
	}
	if data.TradeState != paymentgateway.TradeStateSuccess {
		uc.logger.Infow("ignoring non-success notification", "order_no", data.OrderNo, "state", data.TradeState)
		return nil
	}

	order, err := uc.orderRepo.GetByOrderNo(ctx, data.OrderNo)
	if err != nil {
		uc.logger.Warnw("notification for unknown order", "order_no", data.OrderNo, "error", err)
		return toAppError(fmt.Errorf("failed to get order: %w", err))
	}

	expected := order.TotalAmount().Sub(order.DiscountAmount()).Fen()
	if data.Amount > 0 && data.Amount != expected {
		uc.logger.Errorw("notified amount mismatch",
			"order_no", order.OrderNo(),
			"expected", expected,
			"notified", data.Amount)
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "amount mismatch", ErrAmountMismatch)
	}

	return settleOrder(ctx, uc.orderRepo, order, data.TransactionID, data.PaidAt, uc.clock, uc.recorder, uc.logger)
}
