package http

import (
	"github.com/buildingai/cozepkg/internal/application/bootstrap"
	"github.com/buildingai/cozepkg/internal/application/bootstrap/upgrades"
	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/domain/shared/services"
	"github.com/buildingai/cozepkg/internal/infrastructure/auth"
	"github.com/buildingai/cozepkg/internal/infrastructure/migration"
	"github.com/buildingai/cozepkg/internal/shared/version"
)

// AppVersion is the release the orchestrator installs or upgrades to.
func (c *Container) AppVersion() string {
	if v := c.cfg.Bootstrap.AppVersion; v != "" {
		return v
	}
	return version.Current
}

// PermissionDefinitions lists the permissions of every guarded route.
// Routes must be set up first.
func (c *Container) PermissionDefinitions() []permission.Definition {
	return apppermission.Definitions(c.permissionRegistry.Codes()...)
}

// NewOrchestrator builds the install/upgrade orchestrator. With interactive
// set, a missing admin password is read from the terminal.
func (c *Container) NewOrchestrator(interactive bool) *bootstrap.Orchestrator {
	log := c.log.Named("bootstrap")
	schema := migration.NewSchemaManager(c.db, c.cfg.Database.Driver, log)
	assets := bootstrap.NewAssets(c.cfg.Bootstrap.AssetDir, log)
	menus := bootstrap.NewMenuMerger(c.repos.menu, c.permissions, log)

	var prompt bootstrap.PasswordPrompt
	if interactive {
		prompt = auth.NewTerminalPasswordPrompt().Prompt
	}

	installer := bootstrap.NewInstaller(bootstrap.InstallerDeps{
		Schema:      schema,
		Users:       c.repos.user,
		Hasher:      c.hasher,
		Permissions: c.permissions,
		Definitions: c.PermissionDefinitions,
		Menus:       menus,
		Pages:       c.repos.page,
		PayConfigs:  c.repos.payConfig,
		Catalog:     c.repos.aiCatalog,
		Assets:      assets,
		Prompt:      prompt,
	}, bootstrap.AdminConfig{
		Username: c.cfg.Bootstrap.AdminUsername,
		Password: c.cfg.Bootstrap.AdminPassword,
		Email:    c.cfg.Bootstrap.AdminEmail,
	}, log)

	steps := upgrades.Registry(upgrades.Deps{
		Tables:       schema,
		Packages:     c.repos.packageConfig,
		Orders:       c.repos.order,
		Users:        c.repos.user,
		Permissions:  c.permissions,
		Menus:        menus,
		Assets:       assets,
		OrderNumbers: services.NewOrderNumberGeneratorWithClock(c.clock),
		Clock:        c.clock,
		Logger:       log.Named("upgrade"),
	})

	markers := bootstrap.NewMarkers(c.cfg.Bootstrap.DataDir, c.clock)
	return bootstrap.NewOrchestrator(c.AppVersion(), c.settings, markers, installer, steps, log)
}
