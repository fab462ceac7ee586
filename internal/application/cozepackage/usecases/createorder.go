package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/domain/shared/services"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// maxOrderNoAttempts bounds retries when another process took the same
// order number.
const maxOrderNoAttempts = 3

type CreateOrderCommand struct {
	UserID        string
	PackageID     string
	PaymentMethod string
}

type CreateOrderUseCase struct {
	orderRepo   cozepackage.OrderRepository
	packageRepo cozepackage.PackageConfigRepository
	orderNoGen  services.OrderNumberGenerator
	clock       biztime.Clock
	recorder    OrderRecorder
	logger      logger.Interface
}

func NewCreateOrderUseCase(
	orderRepo cozepackage.OrderRepository,
	packageRepo cozepackage.PackageConfigRepository,
	orderNoGen services.OrderNumberGenerator,
	clock biztime.Clock,
	recorder OrderRecorder,
	logger logger.Interface,
) *CreateOrderUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		packageRepo: packageRepo,
		orderNoGen:  orderNoGen,
		clock:       clock,
		recorder:    recorder,
		logger:      logger,
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*dto.OrderCreatedDTO, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		if !errors.Is(err, cozepackage.ErrPackageNotFound) {
			uc.logger.Errorw("failed to get package", "package_id", cmd.PackageID, "error", err)
		}
		return nil, toAppError(fmt.Errorf("failed to get package: %w", err))
	}

	method := vo.PaymentMethod(cmd.PaymentMethod)

	var order *cozepackage.Order
	for attempt := 1; attempt <= maxOrderNoAttempts; attempt++ {
		order, err = cozepackage.NewOrder(uc.orderNoGen.Generate(cozepackage.OrderNoPrefix), cmd.UserID, pkg, method, uc.clock.Now())
		if err != nil {
			return nil, apperrors.NewValidationError("invalid order", err.Error())
		}

		err = uc.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, cozepackage.ErrDuplicateOrderNo) {
			uc.logger.Errorw("failed to create order", "user_id", cmd.UserID, "package_id", cmd.PackageID, "error", err)
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		uc.logger.Warnw("order number collision, retrying", "order_no", order.OrderNo(), "attempt", attempt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	uc.recorder.OrderCreated(order.PaymentMethod().String())
	uc.logger.Infow("order created",
		"order_id", order.ID(),
		"order_no", order.OrderNo(),
		"user_id", cmd.UserID,
		"package", pkg.Name(),
		"amount", order.TotalAmount().Fen())

	return &dto.OrderCreatedDTO{OrderID: order.ID(), OrderNo: order.OrderNo()}, nil
}
