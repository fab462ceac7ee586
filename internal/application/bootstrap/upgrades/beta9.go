package upgrades

import (
	"context"
	"fmt"

	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
)

// beta9 introduces package configuration.
type beta9 struct {
	d Deps
}

type defaultPackage struct {
	name        string
	days        int
	original    float64
	current     float64
	description string
}

var defaultPackages = []defaultPackage{
	{"Coze Basic", 30, 99.99, 79.99, "For individuals getting started with Coze bots"},
	{"Coze Pro", 30, 199.99, 159.99, "For power users with higher usage and priority support"},
	{"Coze Enterprise", 30, 499.99, 399.99, "For teams that need shared workspaces and dedicated support"},
	{"Coze Annual", 365, 1999.99, 1599.99, "A full year of Coze Pro at a discount"},
}

var beta9Menus = []string{"user-coze-package-save", "user-coze-package"}

func (s *beta9) Version() string { return "1.0.0-beta.9" }

func (s *beta9) Apply(ctx context.Context) error {
	if err := s.d.Tables.SyncTable(ctx, TablePackageConfigs); err != nil {
		return fmt.Errorf("failed to sync %s: %w", TablePackageConfigs, err)
	}
	if err := s.seedPackages(ctx); err != nil {
		return err
	}
	defs := apppermission.Definitions(apppermission.CodePackageGetConfig, apppermission.CodePackageSetConfig)
	if err := ensurePermissions(ctx, s.d, defs); err != nil {
		return err
	}
	return mergeMenus(ctx, s.d, s.Version(), "user")
}

func (s *beta9) seedPackages(ctx context.Context) error {
	n, err := s.d.Packages.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count packages: %w", err)
	}
	if n > 0 {
		s.d.Logger.Infow("packages already configured, skipping defaults", "count", n)
		return nil
	}

	for _, p := range defaultPackages {
		original, err := vo.MoneyFromYuan(p.original)
		if err != nil {
			return fmt.Errorf("invalid default package %s: %w", p.name, err)
		}
		current, err := vo.MoneyFromYuan(p.current)
		if err != nil {
			return fmt.Errorf("invalid default package %s: %w", p.name, err)
		}
		pkg, err := cozepackage.NewPackageConfig(p.name, p.days, original, current, p.description)
		if err != nil {
			return fmt.Errorf("invalid default package %s: %w", p.name, err)
		}
		if err := s.d.Packages.Create(ctx, pkg); err != nil {
			return fmt.Errorf("failed to create package %s: %w", p.name, err)
		}
	}
	s.d.Logger.Infow("default packages created", "count", len(defaultPackages))
	return nil
}

func (s *beta9) Rollback(ctx context.Context) error {
	if err := s.d.Menus.Remove(ctx, beta9Menus...); err != nil {
		return err
	}
	if err := s.d.Permissions.Remove(ctx, []string{apppermission.CodePackageGetConfig, apppermission.CodePackageSetConfig}); err != nil {
		return fmt.Errorf("failed to remove permissions: %w", err)
	}
	if err := s.d.Tables.DropTable(ctx, TablePackageConfigs); err != nil {
		return fmt.Errorf("failed to drop %s: %w", TablePackageConfigs, err)
	}
	return s.d.Permissions.RebuildPolicies(ctx)
}
