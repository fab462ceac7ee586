// Package upgrades holds the data migration shipped with each release.
package upgrades

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/bootstrap"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/domain/shared/services"
	"github.com/buildingai/cozepkg/internal/domain/user"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// Table names managed by upgrade steps.
const (
	TablePackageConfigs = constants.TablePackageConfigs
	TableOrders         = constants.TableOrders
)

// TableManager creates and drops individual tables by name.
type TableManager interface {
	SyncTable(ctx context.Context, name string) error
	DropTable(ctx context.Context, name string) error
}

// PermissionEnsurer adds and removes individual permissions.
type PermissionEnsurer interface {
	Ensure(ctx context.Context, def permission.Definition) (bool, error)
	Remove(ctx context.Context, codes []string) error
	RebuildPolicies(ctx context.Context) error
}

// OrderSeeder is the part of the order store seeding needs.
type OrderSeeder interface {
	Create(ctx context.Context, order *cozepackage.Order) error
	Count(ctx context.Context) (int64, error)
}

// UserLookup finds the user example data is attached to.
type UserLookup interface {
	First(ctx context.Context) (*user.User, error)
}

type Deps struct {
	Tables       TableManager
	Packages     cozepackage.PackageConfigRepository
	Orders       OrderSeeder
	Users        UserLookup
	Permissions  PermissionEnsurer
	Menus        *bootstrap.MenuMerger
	Assets       *bootstrap.Assets
	OrderNumbers services.OrderNumberGenerator
	Clock        biztime.Clock
	Logger       logger.Interface
}

// Registry maps each release to its upgrade step.
func Registry(d Deps) map[string]bootstrap.UpgradeStep {
	steps := []bootstrap.UpgradeStep{
		&beta9{d: d},
		&beta10{d: d},
	}
	out := make(map[string]bootstrap.UpgradeStep, len(steps))
	for _, s := range steps {
		out[s.Version()] = s
	}
	return out
}

func ensurePermissions(ctx context.Context, d Deps, defs []permission.Definition) error {
	added := 0
	for _, def := range defs {
		created, err := d.Permissions.Ensure(ctx, def)
		if err != nil {
			return fmt.Errorf("failed to ensure permission %s: %w", def.Code, err)
		}
		if created {
			added++
		}
	}
	d.Logger.Infow("permissions ensured", "added", added, "total", len(defs))
	return d.Permissions.RebuildPolicies(ctx)
}

func mergeMenus(ctx context.Context, d Deps, version, anchor string) error {
	data, found, err := d.Assets.UpgradeMenu(version)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no menu definition shipped for %s", version)
	}
	nodes, err := d.Menus.Parse(data)
	if err != nil {
		return err
	}
	_, err = d.Menus.MergeUnder(ctx, anchor, nodes)
	return err
}
