package usecases

import (
	"context"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type GetStatisticsUseCase struct {
	orderRepo cozepackage.OrderRepository
	logger    logger.Interface
}

func NewGetStatisticsUseCase(orderRepo cozepackage.OrderRepository, logger logger.Interface) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{orderRepo: orderRepo, logger: logger}
}

// Execute never fails: a store error is logged and reported as zeroes.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context) *dto.StatisticsDTO {
	return orderStatistics(ctx, uc.orderRepo, uc.logger)
}

func orderStatistics(ctx context.Context, repo cozepackage.OrderRepository, log logger.Interface) *dto.StatisticsDTO {
	stats, err := repo.Statistics(ctx)
	if err != nil {
		log.Errorw("failed to compute order statistics", "error", err)
		stats = nil
	}
	if stats == nil {
		stats = &cozepackage.Statistics{}
	}
	return dto.ToStatisticsDTO(stats)
}
