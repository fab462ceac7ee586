package handlers

import (
	"context"
	"net/http"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	userusecases "github.com/buildingai/cozepkg/internal/application/user/usecases"
	"github.com/buildingai/cozepkg/internal/domain/menu"
)

// Use case interfaces consumed by the handlers in this package.

type loginUseCase interface {
	Execute(ctx context.Context, cmd userusecases.LoginWithPasswordCommand) (*userusecases.LoginWithPasswordResult, error)
}

type getPackageConfigUseCase interface {
	Execute(ctx context.Context) (*dto.PackageConfigDTO, error)
}

type setPackageConfigUseCase interface {
	Execute(ctx context.Context, req dto.SetPackageConfigRequest) (*dto.PackageConfigDTO, error)
}

type listOrdersUseCase interface {
	Execute(ctx context.Context, req dto.ListOrdersRequest) (*usecases.ListOrdersResult, error)
}

type getOrderUseCase interface {
	Execute(ctx context.Context, idOrOrderNo string) (*dto.OrderDTO, error)
}

type getStatisticsUseCase interface {
	Execute(ctx context.Context) *dto.StatisticsDTO
}

type requestRefundUseCase interface {
	Execute(ctx context.Context, cmd usecases.RequestRefundCommand) (*dto.RefundResultDTO, error)
}

type getPackageCenterUseCase interface {
	Execute(ctx context.Context, userID string) (*dto.PackageCenterDTO, error)
}

type createOrderUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateOrderCommand) (*dto.OrderCreatedDTO, error)
}

type prepayOrderUseCase interface {
	Execute(ctx context.Context, cmd usecases.PrepayOrderCommand) (*dto.PrepayDTO, error)
}

type queryPayResultUseCase interface {
	Execute(ctx context.Context, cmd usecases.QueryPayResultCommand) (*dto.PayResultDTO, error)
}

type activePackageUseCase interface {
	Execute(ctx context.Context, userID string) (*dto.ActivePackageDTO, error)
	HasActivePackage(ctx context.Context, userID string) bool
	RemainingDays(ctx context.Context, userID string) int
}

type paymentNotifyUseCase interface {
	Execute(ctx context.Context, req *http.Request) error
}

type menuLister interface {
	ListAll(ctx context.Context) ([]*menu.Menu, error)
}
