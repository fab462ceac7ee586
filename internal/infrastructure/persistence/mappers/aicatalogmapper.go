package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/buildingai/cozepkg/internal/domain/aicatalog"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

// AICatalogMapper converts catalogue entries. Slice and map fields are stored
// as JSON columns.
type AICatalogMapper interface {
	ProviderToModel(p *aicatalog.Provider) (*models.AIProviderModel, error)
	ProviderToDomain(model *models.AIProviderModel) (*aicatalog.Provider, error)
	ModelToModel(m *aicatalog.Model) (*models.AIModelModel, error)
	ModelToDomain(model *models.AIModelModel) (*aicatalog.Model, error)
	KeyTemplateToModel(t *aicatalog.KeyTemplate) *models.KeyTemplateModel
}

type AICatalogMapperImpl struct{}

func NewAICatalogMapper() AICatalogMapper {
	return &AICatalogMapperImpl{}
}

func (m *AICatalogMapperImpl) ProviderToModel(p *aicatalog.Provider) (*models.AIProviderModel, error) {
	types, err := toJSON(p.SupportedModelTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode supported model types: %w", err)
	}
	return &models.AIProviderModel{
		ID:                  p.ID,
		Provider:            p.Provider,
		Name:                p.Name,
		IconURL:             p.IconURL,
		SupportedModelTypes: types,
		IsBuiltIn:           p.IsBuiltIn,
		IsActive:            p.IsActive,
		SortOrder:           p.SortOrder,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}, nil
}

func (m *AICatalogMapperImpl) ProviderToDomain(model *models.AIProviderModel) (*aicatalog.Provider, error) {
	var types []string
	if err := fromJSON(model.SupportedModelTypes, &types); err != nil {
		return nil, fmt.Errorf("failed to decode supported model types: %w", err)
	}
	return &aicatalog.Provider{
		ID:                  model.ID,
		Provider:            model.Provider,
		Name:                model.Name,
		IconURL:             model.IconURL,
		SupportedModelTypes: types,
		IsBuiltIn:           model.IsBuiltIn,
		IsActive:            model.IsActive,
		SortOrder:           model.SortOrder,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}, nil
}

func (m *AICatalogMapperImpl) ModelToModel(e *aicatalog.Model) (*models.AIModelModel, error) {
	features, err := toJSON(e.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model features: %w", err)
	}
	cfg, err := toJSON(e.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model config: %w", err)
	}
	return &models.AIModelModel{
		ID:          e.ID,
		ProviderID:  e.ProviderID,
		Model:       e.Model,
		Name:        e.Name,
		ModelType:   e.ModelType,
		Features:    features,
		ContextSize: e.ContextSize,
		Config:      cfg,
		IsBuiltIn:   e.IsBuiltIn,
		IsActive:    e.IsActive,
		SortOrder:   e.SortOrder,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}

func (m *AICatalogMapperImpl) ModelToDomain(model *models.AIModelModel) (*aicatalog.Model, error) {
	var features []string
	if err := fromJSON(model.Features, &features); err != nil {
		return nil, fmt.Errorf("failed to decode model features: %w", err)
	}
	cfg := map[string]interface{}{}
	if err := fromJSON(model.Config, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode model config: %w", err)
	}
	return &aicatalog.Model{
		ID:          model.ID,
		ProviderID:  model.ProviderID,
		Model:       model.Model,
		Name:        model.Name,
		ModelType:   model.ModelType,
		Features:    features,
		ContextSize: model.ContextSize,
		Config:      cfg,
		IsBuiltIn:   model.IsBuiltIn,
		IsActive:    model.IsActive,
		SortOrder:   model.SortOrder,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func (m *AICatalogMapperImpl) KeyTemplateToModel(t *aicatalog.KeyTemplate) *models.KeyTemplateModel {
	fields := datatypes.JSON(t.FieldConfig)
	if len(fields) == 0 {
		fields = datatypes.JSON("[]")
	}
	return &models.KeyTemplateModel{
		ID:          t.ID,
		Name:        t.Name,
		Type:        t.Type,
		TagName:     t.TagName,
		Icon:        t.Icon,
		FieldConfig: fields,
		IsEnabled:   t.IsEnabled,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func fromJSON(data datatypes.JSON, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
