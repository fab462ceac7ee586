package usecases

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type GetPackageConfigUseCase struct {
	packageRepo cozepackage.PackageConfigRepository
	settings    SettingStore
	logger      logger.Interface
}

func NewGetPackageConfigUseCase(
	packageRepo cozepackage.PackageConfigRepository,
	settings SettingStore,
	logger logger.Interface,
) *GetPackageConfigUseCase {
	return &GetPackageConfigUseCase{
		packageRepo: packageRepo,
		settings:    settings,
		logger:      logger,
	}
}

func (uc *GetPackageConfigUseCase) Execute(ctx context.Context) (*dto.PackageConfigDTO, error) {
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

	return &dto.PackageConfigDTO{
		CozePackageStatus:  status,
		CozePackageExplain: explain,
		CozePackageRule:    dto.ToPackageRuleDTOList(pkgs),
	}, nil
}
