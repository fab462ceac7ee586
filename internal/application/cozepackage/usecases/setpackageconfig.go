package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/shared/db"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// SetPackageConfigUseCase replaces the whole package set and the two
// dictionary keys in one transaction.
type SetPackageConfigUseCase struct {
	packageRepo cozepackage.PackageConfigRepository
	settings    SettingStore
	txManager   db.Transactor
	invalidator CenterInvalidator
	logger      logger.Interface
}

func NewSetPackageConfigUseCase(
	packageRepo cozepackage.PackageConfigRepository,
	settings SettingStore,
	txManager db.Transactor,
	invalidator CenterInvalidator,
	logger logger.Interface,
) *SetPackageConfigUseCase {
	return &SetPackageConfigUseCase{
		packageRepo: packageRepo,
		settings:    settings,
		txManager:   txManager,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *SetPackageConfigUseCase) Execute(ctx context.Context, req dto.SetPackageConfigRequest) (*dto.PackageConfigDTO, error) {
	rules := make([]cozepackage.Rule, 0, len(req.CozePackageRule))
	for _, r := range req.CozePackageRule {
		if r == nil {
			continue
		}
		rule, err := r.ToRule()
		if err != nil {
			uc.logger.Warnw("rejected package config", "error", err)
			return nil, toAppError(err)
		}
		rules = append(rules, rule)
	}

	if err := cozepackage.ValidateRules(rules); err != nil {
		uc.logger.Warnw("rejected package config", "error", err)
		return nil, toAppError(err)
	}

	var saved []*cozepackage.PackageConfig
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = uc.replaceAll(txCtx, rules)
		if err != nil {
			return err
		}

		if err := uc.settings.SetBool(txCtx, setting.GroupCozePackage, setting.KeyCozePackageStatus,
			req.CozePackageStatus, "Coze package switch"); err != nil {
			return err
		}
		return uc.settings.SetString(txCtx, setting.GroupCozePackage, setting.KeyCozePackageExplain,
			req.CozePackageExplain, "Coze package purchase notes")
	})
	if err != nil {
		uc.logger.Errorw("failed to save package config", "error", err)
		return nil, toAppError(err)
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}

	uc.logger.Infow("package config saved", "packages", len(saved), "status", req.CozePackageStatus)

	return &dto.PackageConfigDTO{
		CozePackageStatus:  req.CozePackageStatus,
		CozePackageExplain: req.CozePackageExplain,
		CozePackageRule:    dto.ToPackageRuleDTOList(saved),
	}, nil
}

// replaceAll makes the stored set equal to rules. Omitted rows are deleted
// and renamed rows parked before any final name is written, so the unique
// name index only ever sees the end state.
func (uc *SetPackageConfigUseCase) replaceAll(ctx context.Context, rules []cozepackage.Rule) ([]*cozepackage.PackageConfig, error) {
	existing := make([]*cozepackage.PackageConfig, len(rules))
	keep := make([]string, 0, len(rules))
	claimed := make(map[string]bool, len(rules))
	for i, rule := range rules {
		// A repeated id updates the row once; later copies become new rows.
		if rule.ID == "" || claimed[rule.ID] {
			continue
		}
		pkg, err := uc.packageRepo.GetByID(ctx, rule.ID)
		switch {
		case err == nil:
			existing[i] = pkg
			keep = append(keep, pkg.ID())
			claimed[pkg.ID()] = true
		case !errors.Is(err, cozepackage.ErrPackageNotFound):
			return nil, fmt.Errorf("failed to get package %s: %w", rule.ID, err)
		}
	}

	removed, err := uc.packageRepo.DeleteExcept(ctx, keep)
	if err != nil {
		return nil, fmt.Errorf("failed to delete omitted packages: %w", err)
	}
	if removed > 0 {
		uc.logger.Infow("removed omitted packages", "count", removed)
	}

	for i, pkg := range existing {
		if pkg == nil || pkg.Name() == strings.TrimSpace(rules[i].Name) {
			continue
		}
		if err := uc.packageRepo.ParkName(ctx, pkg.ID()); err != nil {
			return nil, fmt.Errorf("failed to release name of package %s: %w", pkg.ID(), err)
		}
	}

	saved := make([]*cozepackage.PackageConfig, 0, len(rules))
	for i, rule := range rules {
		pkg, err := uc.write(ctx, existing[i], rule)
		if err != nil {
			return nil, err
		}
		saved = append(saved, pkg)
	}
	return saved, nil
}

func (uc *SetPackageConfigUseCase) write(ctx context.Context, existing *cozepackage.PackageConfig, rule cozepackage.Rule) (*cozepackage.PackageConfig, error) {
	if existing != nil {
		if err := existing.Apply(rule); err != nil {
			return nil, err
		}
		if err := uc.packageRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update package %s: %w", existing.ID(), err)
		}
		return existing, nil
	}

	pkg, err := cozepackage.NewPackageConfig(rule.Name, rule.DurationDays, rule.OriginalPrice, rule.CurrentPrice, rule.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.packageRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package %q: %w", rule.Name, err)
	}
	return pkg, nil
}
