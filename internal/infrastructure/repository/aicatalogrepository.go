package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/aicatalog"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

// AICatalogRepositoryImpl upserts providers by code, models by
// (provider, model) and key templates by name.
type AICatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AICatalogMapper
}

func NewAICatalogRepository(db *gorm.DB) aicatalog.Repository {
	return &AICatalogRepositoryImpl{db: db, mapper: mappers.NewAICatalogMapper()}
}

func (r *AICatalogRepositoryImpl) UpsertProvider(ctx context.Context, p *aicatalog.Provider) (bool, error) {
	model, err := r.mapper.ProviderToModel(p)
	if err != nil {
		return false, err
	}

	var existing models.AIProviderModel
	err = r.db.WithContext(ctx).Where("provider = ?", p.Provider).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return false, fmt.Errorf("failed to create provider %s: %w", p.Provider, err)
		}
		p.ID = model.ID
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to get provider %s: %w", p.Provider, err)
	}

	err = r.db.WithContext(ctx).Model(&existing).
		Select("name", "icon_url", "supported_model_types", "is_built_in", "is_active", "sort_order").
		Updates(model).Error
	if err != nil {
		return false, fmt.Errorf("failed to update provider %s: %w", p.Provider, err)
	}
	p.ID = existing.ID
	return false, nil
}

func (r *AICatalogRepositoryImpl) UpsertModel(ctx context.Context, m *aicatalog.Model) (bool, error) {
	model, err := r.mapper.ModelToModel(m)
	if err != nil {
		return false, err
	}

	var existing models.AIModelModel
	err = r.db.WithContext(ctx).Where("provider_id = ? AND model = ?", m.ProviderID, m.Model).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return false, fmt.Errorf("failed to create model %s: %w", m.Model, err)
		}
		m.ID = model.ID
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to get model %s: %w", m.Model, err)
	}

	err = r.db.WithContext(ctx).Model(&existing).
		Select("name", "model_type", "features", "context_size", "config", "is_built_in").
		Updates(model).Error
	if err != nil {
		return false, fmt.Errorf("failed to update model %s: %w", m.Model, err)
	}
	m.ID = existing.ID
	return false, nil
}

func (r *AICatalogRepositoryImpl) UpsertKeyTemplate(ctx context.Context, t *aicatalog.KeyTemplate) (bool, error) {
	model := r.mapper.KeyTemplateToModel(t)

	var existing models.KeyTemplateModel
	err := r.db.WithContext(ctx).Where("name = ?", t.Name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return false, fmt.Errorf("failed to create key template %s: %w", t.Name, err)
		}
		t.ID = model.ID
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to get key template %s: %w", t.Name, err)
	}

	err = r.db.WithContext(ctx).Model(&existing).
		Select("type", "tag_name", "icon", "field_config", "is_enabled", "sort_order").
		Updates(model).Error
	if err != nil {
		return false, fmt.Errorf("failed to update key template %s: %w", t.Name, err)
	}
	t.ID = existing.ID
	return false, nil
}
