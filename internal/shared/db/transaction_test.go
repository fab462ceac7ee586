package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type row struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&row{}))
	return gdb
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	gdb := openTestDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, GetTxFromContext(ctx, gdb).Create(&row{Name: "a"}).Error)
		return errors.New("boom")
	})
	require.Error(t, err)

	var count int64
	gdb.Model(&row{}).Count(&count)
	assert.Zero(t, count)
}

func TestRunInTransaction_NestedReusesOuter(t *testing.T) {
	gdb := openTestDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetTxFromContext(ctx, gdb)
		return tm.RunInTransaction(ctx, func(inner context.Context) error {
			assert.Same(t, outer, GetTxFromContext(inner, gdb))
			return GetTxFromContext(inner, gdb).Create(&row{Name: "b"}).Error
		})
	})
	require.NoError(t, err)

	var count int64
	gdb.Model(&row{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestContainsFold(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, gdb.Create(&[]row{{Name: "COZE2025"}, {Name: "ord1"}}).Error)

	var rows []row
	require.NoError(t, gdb.Scopes(ContainsFold("name", "coze")).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "COZE2025", rows[0].Name)
}

func TestContainsFold_EscapesWildcards(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, gdb.Create(&[]row{{Name: "50%_off!"}, {Name: "500 off"}, {Name: "5x0"}}).Error)

	var rows []row
	require.NoError(t, gdb.Scopes(ContainsFold("name", "0%_")).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "50%_off!", rows[0].Name)

	rows = nil
	require.NoError(t, gdb.Scopes(ContainsFold("name", "_")).Find(&rows).Error)
	assert.Len(t, rows, 1)

	rows = nil
	require.NoError(t, gdb.Scopes(ContainsFold("name", "off!")).Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%coze%", ContainsPattern("coze"))
	assert.Equal(t, "%50!%!_off!!%", ContainsPattern("50%_off!"))
}
