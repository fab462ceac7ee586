package migration

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestSchemaManager_SyncAllCreatesEveryTable(t *testing.T) {
	db := setupTestDB(t)
	s := NewSchemaManager(db, config.DriverSQLite, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Prerequisites(ctx))
	require.NoError(t, s.SyncAll(ctx))
	require.NoError(t, s.FullText(ctx))

	for name := range tableModels {
		assert.True(t, db.Migrator().HasTable(name), name)
	}
}

func TestSchemaManager_SyncAndDropTable(t *testing.T) {
	db := setupTestDB(t)
	s := NewSchemaManager(db, config.DriverSQLite, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, s.SyncTable(ctx, constants.TableOrders))
	assert.True(t, db.Migrator().HasTable(constants.TableOrders))

	// Syncing twice is harmless.
	require.NoError(t, s.SyncTable(ctx, constants.TableOrders))

	require.NoError(t, s.DropTable(ctx, constants.TableOrders))
	assert.False(t, db.Migrator().HasTable(constants.TableOrders))

	assert.Error(t, s.SyncTable(ctx, "no_such_table"))
	assert.Error(t, s.DropTable(ctx, "no_such_table"))
}

func TestManager_PicksStrategyByDriver(t *testing.T) {
	assert.Equal(t, "goose", NewManager(config.DriverMySQL, logger.NewNop()).GetStrategy().GetName())
	assert.Equal(t, "gorm_auto_migrate", NewManager(config.DriverPostgres, logger.NewNop()).GetStrategy().GetName())
	assert.Equal(t, "gorm_auto_migrate", NewManager(config.DriverSQLite, logger.NewNop()).GetStrategy().GetName())
}

func TestManager_AutoMigrateDefaultsToAllModels(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(config.DriverSQLite, logger.NewNop())

	require.NoError(t, m.Migrate(db))
	assert.True(t, db.Migrator().HasTable(constants.TablePackageConfigs))
	assert.True(t, db.Migrator().HasTable(constants.TableUsers))
}

func TestEmbeddedScriptsCoverEveryTable(t *testing.T) {
	var sb strings.Builder
	err := fs.WalkDir(Scripts, ScriptsDir(config.DriverMySQL), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := Scripts.ReadFile(path)
		if err != nil {
			return err
		}
		assert.Contains(t, string(data), "-- +goose Up", path)
		assert.Contains(t, string(data), "-- +goose Down", path)
		sb.Write(data)
		return nil
	})
	require.NoError(t, err)

	for name := range tableModels {
		assert.Contains(t, sb.String(), "CREATE TABLE IF NOT EXISTS "+name+" (", name)
	}
}

func TestGenerator_CreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scripts")
	g := NewGenerator(dir, logger.NewNop())
	g.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	up, down, err := g.CreateMigration("add_coupon")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20250304050607_add_coupon.up.sql"), up)
	assert.Equal(t, filepath.Join(dir, "20250304050607_add_coupon.down.sql"), down)

	data, err := os.ReadFile(up)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- Migration: add_coupon")

	_, _, err = g.CreateMigration("")
	assert.Error(t, err)
}

func TestGolangMigrateRejectsSQLite(t *testing.T) {
	s := NewGolangMigrateStrategy(t.TempDir(), config.DriverSQLite, logger.NewNop())
	err := s.Migrate(setupTestDB(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support")
}
