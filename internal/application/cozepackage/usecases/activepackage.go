package usecases

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// GetActivePackageUseCase answers "what does this user currently own".
type GetActivePackageUseCase struct {
	orderRepo cozepackage.OrderRepository
	clock     biztime.Clock
	logger    logger.Interface
}

func NewGetActivePackageUseCase(
	orderRepo cozepackage.OrderRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *GetActivePackageUseCase {
	return &GetActivePackageUseCase{
		orderRepo: orderRepo,
		clock:     clock,
		logger:    logger,
	}
}

// Execute returns nil without error when the user has no active package.
func (uc *GetActivePackageUseCase) Execute(ctx context.Context, userID string) (*dto.ActivePackageDTO, error) {
	now := uc.clock.Now()
	order, err := uc.orderRepo.FindActive(ctx, userID, now)
	if err != nil {
		uc.logger.Errorw("failed to find active package", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to find active package: %w", err)
	}
	if order == nil || !order.IsActiveAt(now) {
		return nil, nil
	}

	pkgID := ""
	if order.PackageConfigID() != nil {
		pkgID = *order.PackageConfigID()
	}

	return &dto.ActivePackageDTO{
		PackageID:     pkgID,
		OrderID:       order.ID(),
		PackageName:   order.PackageName(),
		RemainingDays: order.RemainingDays(now),
		Status:        dto.ActivePackageStatus,
		ExpireDate:    *order.ExpiredAt(),
		AutoRenew:     false,
		CreatedAt:     order.CreatedAt(),
		UpdatedAt:     order.UpdatedAt(),
	}, nil
}

// HasActivePackage treats a store failure as "no".
func (uc *GetActivePackageUseCase) HasActivePackage(ctx context.Context, userID string) bool {
	active, err := uc.Execute(ctx, userID)
	return err == nil && active != nil
}

// RemainingDays treats a store failure as zero days.
func (uc *GetActivePackageUseCase) RemainingDays(ctx context.Context, userID string) int {
	active, err := uc.Execute(ctx, userID)
	if err != nil || active == nil {
		return 0
	}
	return active.RemainingDays
}
