package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type GetOrderUseCase struct {
	orderRepo cozepackage.OrderRepository
	logger    logger.Interface
}

func NewGetOrderUseCase(orderRepo cozepackage.OrderRepository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo, logger: logger}
}

// Execute accepts either the order id or its order number.
func (uc *GetOrderUseCase) Execute(ctx context.Context, idOrOrderNo string) (*dto.OrderDTO, error) {
	idOrOrderNo = strings.TrimSpace(idOrOrderNo)
	if idOrOrderNo == "" {
		return nil, apperrors.NewValidationError("order id is required")
	}

	view, err := uc.orderRepo.GetView(ctx, idOrOrderNo)
	if err != nil {
		return nil, toAppError(fmt.Errorf("failed to get order: %w", err))
	}
	return dto.ToOrderDTO(view), nil
}
