package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/db"
)

// parkedNamePrefix plus a 36 char id stays within the name column.
const parkedNamePrefix = "~parked-"

type PackageConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PackageConfigMapper
}

func NewPackageConfigRepository(gdb *gorm.DB) cozepackage.PackageConfigRepository {
	return &PackageConfigRepositoryImpl{db: gdb, mapper: mappers.NewPackageConfigMapper()}
}

func (r *PackageConfigRepositoryImpl) Create(ctx context.Context, pkg *cozepackage.PackageConfig) error {
	model := r.mapper.ToModel(pkg)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", cozepackage.ErrDuplicatePackageName, pkg.Name())
		}
		return fmt.Errorf("failed to create package config: %w", err)
	}
	pkg.SetID(model.ID)
	return nil
}

func (r *PackageConfigRepositoryImpl) Update(ctx context.Context, pkg *cozepackage.PackageConfig) error {
	model := r.mapper.ToModel(pkg)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PackageConfigModel{ID: pkg.ID()}).
		Select("name", "duration", "original_price", "current_price", "description", "updated_at").
		Updates(model)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return fmt.Errorf("%w: %s", cozepackage.ErrDuplicatePackageName, pkg.Name())
		}
		return fmt.Errorf("failed to update package config: %w", result.Error)
	}
	return nil
}

func (r *PackageConfigRepositoryImpl) GetByID(ctx context.Context, id string) (*cozepackage.PackageConfig, error) {
	var model models.PackageConfigModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cozepackage.ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package config: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PackageConfigRepositoryImpl) ListAll(ctx context.Context) ([]*cozepackage.PackageConfig, error) {
	var list []*models.PackageConfigModel
	if err := db.GetTxFromContext(ctx, r.db).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list package configs: %w", err)
	}
	return r.mapper.ToDomainList(list), nil
}

// DeleteExcept removes every package whose ID is not in keepIDs. An empty
// keepIDs clears the table.
func (r *PackageConfigRepositoryImpl) DeleteExcept(ctx context.Context, keepIDs []string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if len(keepIDs) == 0 {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		tx = tx.Where("id NOT IN ?", keepIDs)
	}
	result := tx.Delete(&models.PackageConfigModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete package configs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PackageConfigRepositoryImpl) ParkName(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PackageConfigModel{}).
		Where("id = ?", id).
		Update("name", parkedNamePrefix+id)
	if result.Error != nil {
		return fmt.Errorf("failed to park package name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return cozepackage.ErrPackageNotFound
	}
	return nil
}

func (r *PackageConfigRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.PackageConfigModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count package configs: %w", err)
	}
	return n, nil
}
