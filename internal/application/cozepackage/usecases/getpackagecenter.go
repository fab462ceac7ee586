package usecases

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// ActivePackageFinder is satisfied by GetActivePackageUseCase.
type ActivePackageFinder interface {
	Execute(ctx context.Context, userID string) (*dto.ActivePackageDTO, error)
}

// GetPackageCenterUseCase builds the purchase page. The user-independent
// part is served from cache.
type GetPackageCenterUseCase struct {
	packageRepo cozepackage.PackageConfigRepository
	payRepo     payconfig.Repository
	settings    SettingStore
	cache       PackageCenterCache
	renderer    MarkdownRenderer
	active      ActivePackageFinder
	logger      logger.Interface
}

func NewGetPackageCenterUseCase(
	packageRepo cozepackage.PackageConfigRepository,
	payRepo payconfig.Repository,
	settings SettingStore,
	cache PackageCenterCache,
	renderer MarkdownRenderer,
	active ActivePackageFinder,
	logger logger.Interface,
) *GetPackageCenterUseCase {
	return &GetPackageCenterUseCase{
		packageRepo: packageRepo,
		payRepo:     payRepo,
		settings:    settings,
		cache:       cache,
		renderer:    renderer,
		active:      active,
		logger:      logger,
	}
}

// Execute adds the caller's active package when userID is set.
func (uc *GetPackageCenterUseCase) Execute(ctx context.Context, userID string) (*dto.PackageCenterDTO, error) {
	snapshot, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.PackageCenterDTO{CenterSnapshot: *snapshot}
	if userID == "" || uc.active == nil {
		return result, nil
	}

	active, err := uc.active.Execute(ctx, userID)
	if err != nil {
		uc.logger.Warnw("failed to load active package for center", "user_id", userID, "error", err)
		return result, nil
	}
	result.User = active
	return result, nil
}

func (uc *GetPackageCenterUseCase) snapshot(ctx context.Context) (*dto.CenterSnapshot, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	status, err := uc.settings.GetBool(ctx, setting.GroupCozePackage, setting.KeyCozePackageStatus, false)
	if err != nil {
		uc.logger.Errorw("failed to read package status", "error", err)
		return nil, fmt.Errorf("failed to read package status: %w", err)
	}
	explain, err := uc.settings.GetString(ctx, setting.GroupCozePackage, setting.KeyCozePackageExplain, "")
	if err != nil {
		uc.logger.Errorw("failed to read package explain", "error", err)
		return nil, fmt.Errorf("failed to read package explain: %w", err)
	}

	pkgs, err := uc.packageRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list packages", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	channels, err := uc.payRepo.ListEnabled(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list payment channels", "error", err)
		return nil, fmt.Errorf("failed to list payment channels: %w", err)
	}
	payWays := make([]*dto.PayWayDTO, 0, len(channels))
	for _, ch := range channels {
		payWays = append(payWays, &dto.PayWayDTO{
			Value: string(ch.PayType()),
			Label: ch.Name(),
			Logo:  ch.Logo(),
		})
	}

	html := ""
	if uc.renderer != nil && explain != "" {
		if html, err = uc.renderer.Render(explain); err != nil {
			uc.logger.Warnw("failed to render package explain", "error", err)
			html = ""
		}
	}

	snapshot := &dto.CenterSnapshot{
		Status:      status,
		Explain:     explain,
		ExplainHTML: html,
		PayWayList:  payWays,
		List:        dto.ToPackageRuleDTOList(pkgs),
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, snapshot)
	}
	return snapshot, nil
}
