package mappers

import (
	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

// DictMapper provides methods for converting between setting entries and dict rows
type DictMapper interface {
	ToDomain(model *models.DictModel) *setting.Entry
	ToModel(entry *setting.Entry) *models.DictModel
	ToDomainList(modelList []*models.DictModel) []*setting.Entry
}

type DictMapperImpl struct{}

func NewDictMapper() DictMapper {
	return &DictMapperImpl{}
}

func (m *DictMapperImpl) ToDomain(model *models.DictModel) *setting.Entry {
	if model == nil {
		return nil
	}

	return setting.ReconstructEntry(
		model.ID,
		model.Group,
		model.Key,
		model.Value,
		setting.ValueType(model.ValueType),
		model.Description,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *DictMapperImpl) ToModel(entry *setting.Entry) *models.DictModel {
	if entry == nil {
		return nil
	}

	return &models.DictModel{
		ID:          entry.ID(),
		Group:       entry.Group(),
		Key:         entry.Key(),
		Value:       entry.Value(),
		ValueType:   string(entry.ValueType()),
		Description: entry.Description(),
		CreatedAt:   entry.CreatedAt(),
		UpdatedAt:   entry.UpdatedAt(),
	}
}

func (m *DictMapperImpl) ToDomainList(modelList []*models.DictModel) []*setting.Entry {
	if modelList == nil {
		return nil
	}

	entries := make([]*setting.Entry, 0, len(modelList))
	for _, model := range modelList {
		if entry := m.ToDomain(model); entry != nil {
			entries = append(entries, entry)
		}
	}

	return entries
}
