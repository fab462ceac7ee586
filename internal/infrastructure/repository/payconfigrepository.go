package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

type PayConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PayConfigMapper
}

func NewPayConfigRepository(db *gorm.DB) payconfig.Repository {
	return &PayConfigRepositoryImpl{db: db, mapper: mappers.NewPayConfigMapper()}
}

func (r *PayConfigRepositoryImpl) Create(ctx context.Context, p *payconfig.PayConfig) error {
	model := r.mapper.ToModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create pay config: %w", err)
	}
	p.SetID(model.ID)
	return nil
}

func (r *PayConfigRepositoryImpl) ListEnabled(ctx context.Context) ([]*payconfig.PayConfig, error) {
	var list []*models.PayConfigModel
	if err := r.db.WithContext(ctx).Where("is_enable = ?", true).Order("sort ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list pay configs: %w", err)
	}
	result := make([]*payconfig.PayConfig, 0, len(list))
	for _, m := range list {
		result = append(result, r.mapper.ToDomain(m))
	}
	return result, nil
}

func (r *PayConfigRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.PayConfigModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count pay configs: %w", err)
	}
	return n, nil
}
