package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/db"
)

type MenuRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MenuMapper
}

func NewMenuRepository(gdb *gorm.DB) menu.Repository {
	return &MenuRepositoryImpl{db: gdb, mapper: mappers.NewMenuMapper()}
}

func (r *MenuRepositoryImpl) Create(ctx context.Context, m *menu.Menu) error {
	model := r.mapper.ToModel(m)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create menu %q: %w", m.Name(), err)
	}
	m.SetID(model.ID)
	return nil
}

func (r *MenuRepositoryImpl) Update(ctx context.Context, m *menu.Menu) error {
	model := r.mapper.ToModel(m)
	// Select("*") writes zero values such as is_hidden=false and a nil parent.
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.MenuModel{ID: m.ID()}).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update menu %d: %w", m.ID(), result.Error)
	}
	return nil
}

func (r *MenuRepositoryImpl) GetByID(ctx context.Context, id uint) (*menu.Menu, error) {
	var model models.MenuModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, menu.ErrMenuNotFound
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *MenuRepositoryImpl) GetByCode(ctx context.Context, code string) (*menu.Menu, error) {
	var model models.MenuModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get menu by code: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *MenuRepositoryImpl) ListAll(ctx context.Context) ([]*menu.Menu, error) {
	var list []*models.MenuModel
	if err := db.GetTxFromContext(ctx, r.db).Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	return r.mapper.ToDomainList(list), nil
}

func (r *MenuRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.MenuModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear menus: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *MenuRepositoryImpl) DeleteByCodes(ctx context.Context, codes []string) (int64, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	result := db.GetTxFromContext(ctx, r.db).Where("code IN ?", codes).Delete(&models.MenuModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete menus: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *MenuRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.MenuModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count menus: %w", err)
	}
	return n, nil
}
