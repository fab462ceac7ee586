package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/db"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// DictRepository implements setting.Repository on the dict table.
type DictRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.DictMapper
}

func NewDictRepository(gdb *gorm.DB, logger logger.Interface) setting.Repository {
	return &DictRepository{
		db:     gdb,
		logger: logger,
		mapper: mappers.NewDictMapper(),
	}
}

// GetByKey retrieves an entry by group and key
func (r *DictRepository) GetByKey(ctx context.Context, group, key string) (*setting.Entry, error) {
	var model models.DictModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("group_name = ? AND dict_key = ?", group, key).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrNotFound
		}
		r.logger.Errorw("failed to get dict entry", "group", group, "key", key, "error", err)
		return nil, fmt.Errorf("failed to get dict entry: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *DictRepository) GetByGroup(ctx context.Context, group string) ([]*setting.Entry, error) {
	var modelList []*models.DictModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("group_name = ?", group).
		Order("dict_key ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to get dict group", "group", group, "error", err)
		return nil, fmt.Errorf("failed to get dict group: %w", err)
	}

	return r.mapper.ToDomainList(modelList), nil
}

func (r *DictRepository) Upsert(ctx context.Context, e *setting.Entry) error {
	model := r.mapper.ToModel(e)

	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_name"}, {Name: "dict_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "value_type", "description", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert dict entry", "group", e.Group(), "key", e.Key(), "error", err)
		return fmt.Errorf("failed to upsert dict entry: %w", err)
	}

	if e.ID() == 0 {
		e.SetID(model.ID)
	}

	return nil
}

func (r *DictRepository) Delete(ctx context.Context, group, key string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("group_name = ? AND dict_key = ?", group, key).
		Delete(&models.DictModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete dict entry", "group", group, "key", key, "error", result.Error)
		return fmt.Errorf("failed to delete dict entry: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return setting.ErrNotFound
	}

	return nil
}
