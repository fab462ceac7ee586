package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/buildingai/cozepkg/internal/domain/aicatalog"
	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/domain/page"
	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/domain/user"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

const (
	menuFile        = "menu.json"
	homeMenuFile    = "home-menu.json"
	modelConfigFile = "model-config.json"
	keyTemplateFile = "key-template.json"
)

// AdminConfig describes the superuser created on install.
type AdminConfig struct {
	Username string
	Password string
	Email    string
	Nickname string
}

// InstallerDeps groups the collaborators of an install run.
type InstallerDeps struct {
	Schema      Schema
	Users       user.Repository
	Hasher      user.PasswordHasher
	Permissions PermissionSyncer
	Definitions func() []permission.Definition
	Menus       *MenuMerger
	Pages       page.Repository
	PayConfigs  payconfig.Repository
	Catalog     aicatalog.Repository
	Assets      *Assets
	Prompt      PasswordPrompt
	// Notice receives the one-time generated admin password. Defaults to
	// stdout; it never goes to the log.
	Notice io.Writer
}

// Installer performs a fresh install. Only schema sync is critical; every
// other step logs its failure and the run continues.
type Installer struct {
	deps   InstallerDeps
	admin  AdminConfig
	logger logger.Interface
}

func NewInstaller(deps InstallerDeps, admin AdminConfig, log logger.Interface) *Installer {
	if admin.Username == "" {
		admin.Username = "admin"
	}
	if admin.Email == "" {
		admin.Email = "admin@example.com"
	}
	if admin.Nickname == "" {
		admin.Nickname = "Administrator"
	}
	if deps.Notice == nil {
		deps.Notice = os.Stdout
	}
	return &Installer{deps: deps, admin: admin, logger: log}
}

func (i *Installer) Run(ctx context.Context) error {
	if err := i.deps.Schema.Prerequisites(ctx); err != nil {
		i.logger.Errorw("failed to install database prerequisites", "error", err)
	}

	if err := i.deps.Schema.SyncAll(ctx); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	i.step(ctx, "superuser", i.seedSuperuser)
	i.step(ctx, "permissions", i.SyncPermissions)
	i.step(ctx, "menus", i.replaceMenus)
	i.step(ctx, "web page", i.seedWebPage)
	i.step(ctx, "payment channel", i.seedPayConfig)
	i.step(ctx, "ai catalogue", i.seedCatalog)
	i.step(ctx, "key templates", i.seedKeyTemplates)

	if err := i.deps.Schema.FullText(ctx); err != nil {
		i.logger.Warnw("full-text search setup skipped", "error", err)
	}
	return nil
}

func (i *Installer) step(ctx context.Context, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		i.logger.Errorw("install step failed", "step", name, "error", err)
		return
	}
	i.logger.Infow("install step completed", "step", name)
}

// SyncPermissions reconciles the declared permissions and refreshes the
// admin role's policies.
func (i *Installer) SyncPermissions(ctx context.Context) error {
	var defs []permission.Definition
	if i.deps.Definitions != nil {
		defs = i.deps.Definitions()
	}
	res, err := i.deps.Permissions.Sync(ctx, defs)
	if err != nil {
		return err
	}
	i.logger.Infow("permissions synced", "added", res.Added, "restored", res.Restored, "deprecated", res.Deprecated)
	return i.deps.Permissions.RebuildPolicies(ctx)
}

func (i *Installer) seedSuperuser(ctx context.Context) error {
	existing, err := i.deps.Users.GetByUsername(ctx, i.admin.Username)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", i.admin.Username, err)
	}
	if existing != nil {
		i.logger.Infow("superuser already exists", "username", i.admin.Username)
		return i.deps.Permissions.GrantAdmin(existing.ID())
	}

	password, err := i.adminPassword()
	if err != nil {
		return err
	}
	u, err := user.NewRootUser(i.admin.Username, password, i.deps.Hasher)
	if err != nil {
		return err
	}
	if err := u.UpdateProfile(i.admin.Nickname, i.admin.Email); err != nil {
		return err
	}
	if err := i.deps.Users.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}
	i.logger.Infow("superuser created", "username", u.Username(), "user_id", u.ID())
	return i.deps.Permissions.GrantAdmin(u.ID())
}

func (i *Installer) adminPassword() (string, error) {
	if i.admin.Password != "" {
		return i.admin.Password, nil
	}
	if i.deps.Prompt != nil {
		return i.deps.Prompt(i.admin.Username)
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	password := hex.EncodeToString(buf)
	if _, err := fmt.Fprintf(i.deps.Notice, "generated password for %s: %s\n", i.admin.Username, password); err != nil {
		return "", fmt.Errorf("failed to print generated password: %w", err)
	}
	i.logger.Warnw("no admin password configured, generated one and printed it to stdout; change it after first login",
		"username", i.admin.Username)
	return password, nil
}

func (i *Installer) replaceMenus(ctx context.Context) error {
	data, source, err := i.deps.Assets.Install(menuFile)
	if err != nil {
		return err
	}
	nodes, err := i.deps.Menus.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	plan, err := i.deps.Menus.ReplaceAll(ctx, nodes)
	if err != nil {
		return err
	}
	if want := menu.CountNodes(nodes); len(plan.Steps) != want {
		i.logger.Warnw("menu count mismatch", "expected", want, "written", len(plan.Steps))
	}
	return nil
}

// seedWebPage stores the public site's navigation once. An existing page is
// left alone so operator edits survive a reinstall.
func (i *Installer) seedWebPage(ctx context.Context) error {
	_, err := i.deps.Pages.GetByName(ctx, page.NameWeb)
	if err == nil {
		i.logger.Infow("web page already exists, skipping")
		return nil
	}
	if !errors.Is(err, page.ErrPageNotFound) {
		return err
	}

	data, source, err := i.deps.Assets.Install(homeMenuFile)
	if err != nil {
		return err
	}
	p, err := page.NewPage(page.NameWeb, data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return i.deps.Pages.Create(ctx, p)
}

func (i *Installer) seedPayConfig(ctx context.Context) error {
	n, err := i.deps.PayConfigs.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return i.deps.PayConfigs.Create(ctx, payconfig.NewDefaultWechat())
}
