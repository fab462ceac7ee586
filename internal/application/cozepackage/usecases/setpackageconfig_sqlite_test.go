package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/infrastructure/repository"
	"github.com/buildingai/cozepkg/internal/shared/db"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type sqliteConfigFixture struct {
	pkgs cozepackage.PackageConfigRepository
	set  *SetPackageConfigUseCase
}

func newSQLiteConfigFixture(t *testing.T) *sqliteConfigFixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&models.PackageConfigModel{}))

	pkgs := repository.NewPackageConfigRepository(gdb)
	return &sqliteConfigFixture{
		pkgs: pkgs,
		set: NewSetPackageConfigUseCase(
			pkgs, newMemSettings(), db.NewTransactionManager(gdb), &memCenterCache{}, logger.NewNop(),
		),
	}
}

func (f *sqliteConfigFixture) save(t *testing.T, rules ...*dto.PackageRuleDTO) (*dto.PackageConfigDTO, error) {
	t.Helper()
	return f.set.Execute(context.Background(), dto.SetPackageConfigRequest{
		CozePackageStatus: true,
		CozePackageRule:   rules,
	})
}

func (f *sqliteConfigFixture) names(t *testing.T) map[string]string {
	t.Helper()
	all, err := f.pkgs.ListAll(context.Background())
	require.NoError(t, err)
	out := make(map[string]string, len(all))
	for _, p := range all {
		out[p.ID()] = p.Name()
	}
	return out
}

func TestSetPackageConfig_SQLite_SwapsNames(t *testing.T) {
	f := newSQLiteConfigFixture(t)

	first, err := f.save(t,
		&dto.PackageRuleDTO{Name: "Basic", Duration: 30, OriginalPrice: 10, CurrentPrice: 10},
		&dto.PackageRuleDTO{Name: "Pro", Duration: 90, OriginalPrice: 30, CurrentPrice: 25},
	)
	require.NoError(t, err)
	basicID, proID := first.CozePackageRule[0].ID, first.CozePackageRule[1].ID

	_, err = f.save(t,
		&dto.PackageRuleDTO{ID: basicID, Name: "Pro", Duration: 30, OriginalPrice: 10, CurrentPrice: 10},
		&dto.PackageRuleDTO{ID: proID, Name: "Basic", Duration: 90, OriginalPrice: 30, CurrentPrice: 25},
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{basicID: "Pro", proID: "Basic"}, f.names(t))
}

func TestSetPackageConfig_SQLite_ReusesNameOfDroppedRow(t *testing.T) {
	f := newSQLiteConfigFixture(t)

	first, err := f.save(t, &dto.PackageRuleDTO{Name: "Basic", Duration: 30, OriginalPrice: 10, CurrentPrice: 10})
	require.NoError(t, err)
	oldID := first.CozePackageRule[0].ID

	second, err := f.save(t, &dto.PackageRuleDTO{Name: "Basic", Duration: 60, OriginalPrice: 20, CurrentPrice: 15})
	require.NoError(t, err)
	require.Len(t, second.CozePackageRule, 1)
	newID := second.CozePackageRule[0].ID

	assert.NotEqual(t, oldID, newID)
	assert.Equal(t, map[string]string{newID: "Basic"}, f.names(t))
}

func TestSetPackageConfig_SQLite_RejectedSetLeavesRowsUntouched(t *testing.T) {
	f := newSQLiteConfigFixture(t)

	first, err := f.save(t,
		&dto.PackageRuleDTO{Name: "Basic", Duration: 30, OriginalPrice: 10, CurrentPrice: 10},
		&dto.PackageRuleDTO{Name: "Pro", Duration: 90, OriginalPrice: 30, CurrentPrice: 25},
	)
	require.NoError(t, err)
	before := f.names(t)

	_, err = f.save(t,
		&dto.PackageRuleDTO{ID: first.CozePackageRule[0].ID, Name: "Starter", Duration: 30, OriginalPrice: 10, CurrentPrice: 10},
		&dto.PackageRuleDTO{Name: "Team", Duration: 365, OriginalPrice: 100, CurrentPrice: 120},
	)
	require.Error(t, err)

	assert.Equal(t, before, f.names(t))
}
