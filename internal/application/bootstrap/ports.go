package bootstrap

import (
	"context"

	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/domain/permission"
)

// Schema manages the database structure during install.
type Schema interface {
	// Prerequisites installs database extensions the models rely on.
	Prerequisites(ctx context.Context) error
	SyncAll(ctx context.Context) error
	// FullText prepares full-text search support where the database has it.
	FullText(ctx context.Context) error
}

// FlagStore reads and writes dictionary flags.
type FlagStore interface {
	GetBool(ctx context.Context, group, key string, def bool) (bool, error)
	SetBool(ctx context.Context, group, key string, v bool, description string) error
}

// PermissionSyncer reconciles declared permissions with the store.
type PermissionSyncer interface {
	PermissionResolverSource
	Sync(ctx context.Context, defs []permission.Definition) (apppermission.SyncResult, error)
	RebuildPolicies(ctx context.Context) error
	GrantAdmin(userID string) error
}

// PasswordPrompt asks the operator for the password of username.
type PasswordPrompt func(username string) (string, error)

// UpgradeStep is the data migration shipped with one release.
type UpgradeStep interface {
	Version() string
	Apply(ctx context.Context) error
	Rollback(ctx context.Context) error
}
