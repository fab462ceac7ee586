package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
	"github.com/buildingai/cozepkg/internal/shared/query"
	"github.com/buildingai/cozepkg/internal/shared/utils"
)

type ListOrdersResult struct {
	Items      []*dto.OrderDTO
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
	// Statistics covers every order, not just the filtered page.
	Statistics *dto.StatisticsDTO
}

type ListOrdersUseCase struct {
	orderRepo cozepackage.OrderRepository
	logger    logger.Interface
}

func NewListOrdersUseCase(orderRepo cozepackage.OrderRepository, logger logger.Interface) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo, logger: logger}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, req dto.ListOrdersRequest) (*ListOrdersResult, error) {
	filter, err := buildOrderFilter(req)
	if err != nil {
		return nil, err
	}

	views, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &ListOrdersResult{
		Items:      dto.ToOrderDTOList(views),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: utils.TotalPages(total, filter.PageSize),
		Statistics: orderStatistics(ctx, uc.orderRepo, uc.logger),
	}, nil
}

func buildOrderFilter(req dto.ListOrdersRequest) (cozepackage.OrderFilter, error) {
	p := utils.ValidatePagination(req.Page, req.Limit)
	filter := cozepackage.OrderFilter{
		UserID:        strings.TrimSpace(req.UserID),
		OrderNo:       strings.TrimSpace(req.OrderNo),
		OrderStatus:   vo.OrderStatus(req.OrderStatus),
		PaymentStatus: vo.PaymentStatus(req.PaymentStatus),
		RefundStatus:  vo.RefundStatus(req.RefundStatus),
		PackageType:   vo.PackageType(req.PackageType),
		PaymentMethod: vo.PaymentMethod(req.PaymentMethod),
		Keyword:       query.NormalizeKeyword(req.Keyword),
		Page:          p.Page,
		PageSize:      p.PageSize,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}

	switch {
	case filter.OrderStatus != "" && !filter.OrderStatus.IsValid():
		return filter, apperrors.NewValidationError("invalid orderStatus", req.OrderStatus)
	case filter.PaymentStatus != "" && !filter.PaymentStatus.IsValid():
		return filter, apperrors.NewValidationError("invalid paymentStatus", req.PaymentStatus)
	case filter.RefundStatus != "" && !filter.RefundStatus.IsValid():
		return filter, apperrors.NewValidationError("invalid refundStatus", req.RefundStatus)
	case filter.PackageType != "" && !filter.PackageType.IsValid():
		return filter, apperrors.NewValidationError("invalid packageType", req.PackageType)
	case filter.PaymentMethod != "" && !filter.PaymentMethod.IsValid():
		return filter, apperrors.NewValidationError("invalid paymentMethod", req.PaymentMethod)
	}

	start, err := parseBound(req.StartDate, false)
	if err != nil {
		return filter, apperrors.NewValidationError("invalid startDate", err.Error())
	}
	end, err := parseBound(req.EndDate, true)
	if err != nil {
		return filter, apperrors.NewValidationError("invalid endDate", err.Error())
	}
	if start != nil && end != nil && end.Before(*start) {
		return filter, apperrors.NewValidationError("endDate must not be before startDate")
	}
	filter.StartTime, filter.EndTime = start, end
	return filter, nil
}

// parseBound reads a date filter. A bare date used as an upper bound covers
// the whole day.
func parseBound(s string, upper bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(s)
	if err != nil {
		return nil, err
	}
	if upper && len(s) == len("2006-01-02") {
		t = biztime.EndOfDayUTC(t)
	}
	return &t, nil
}
