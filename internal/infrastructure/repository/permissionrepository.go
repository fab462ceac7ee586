package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/db"
)

type PermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PermissionMapper
}

func NewPermissionRepository(gdb *gorm.DB) permission.PermissionRepository {
	return &PermissionRepositoryImpl{db: gdb, mapper: mappers.NewPermissionMapper()}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, perm *permission.Permission) error {
	model := r.mapper.ToModel(perm)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create permission %s: %w", perm.Code(), err)
	}
	return perm.SetID(model.ID)
}

func (r *PermissionRepositoryImpl) Update(ctx context.Context, perm *permission.Permission) error {
	model := r.mapper.ToModel(perm)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PermissionModel{}).
		Where("id = ?", perm.ID()).
		Select("name", "description", "type", "plugin_pack_name", "is_deprecated", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update permission %s: %w", perm.Code(), result.Error)
	}
	return nil
}

func (r *PermissionRepositoryImpl) GetByCode(ctx context.Context, code string) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PermissionRepositoryImpl) ListAll(ctx context.Context) ([]*permission.Permission, error) {
	var list []*models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Order("code ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return r.mapper.ToDomainList(list), nil
}

func (r *PermissionRepositoryImpl) ExistingCodes(ctx context.Context, codes []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(codes))
	if len(codes) == 0 {
		return existing, nil
	}
	var found []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PermissionModel{}).
		Where("code IN ?", codes).
		Pluck("code", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up permission codes: %w", err)
	}
	for _, c := range found {
		existing[c] = true
	}
	return existing, nil
}

func (r *PermissionRepositoryImpl) DeleteByCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	if err := db.GetTxFromContext(ctx, r.db).Where("code IN ?", codes).Delete(&models.PermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete permissions: %w", err)
	}
	return nil
}
