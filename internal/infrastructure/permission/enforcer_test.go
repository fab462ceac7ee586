package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, logger.NewNop())
	require.NoError(t, err)
	return e, db
}

func TestEnforcer_AdminRoleGrantsReplacedPolicies(t *testing.T) {
	e, db := newTestEnforcer(t)

	require.NoError(t, e.ReplaceRolePolicies(constants.RoleAdmin, []string{
		"coze-package:getConfig",
		"coze-package-order:list",
	}))
	require.NoError(t, e.AddRoleForUser("user-1", constants.RoleAdmin))

	allowed, err := e.Enforce("user-1", "coze-package-order", "list")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.Enforce("user-2", "coze-package-order", "list")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, e.ReplaceRolePolicies(constants.RoleAdmin, []string{"coze-package:getConfig"}))
	allowed, err = e.Enforce("user-1", "coze-package-order", "list")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Policies survive a reload from the database.
	reloaded, err := NewEnforcer(db, logger.NewNop())
	require.NoError(t, err)
	allowed, err = reloaded.Enforce("user-1", "coze-package", "getConfig")
	require.NoError(t, err)
	assert.True(t, allowed)

	roles, err := reloaded.GetRolesForUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{constants.RoleAdmin}, roles)
}

func TestEnforcer_RejectsMalformedCode(t *testing.T) {
	e, _ := newTestEnforcer(t)
	assert.Error(t, e.ReplaceRolePolicies(constants.RoleAdmin, []string{"no-action"}))
}
