package mappers

import (
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

type PermissionMapper interface {
	ToDomain(model *models.PermissionModel) *permission.Permission
	ToModel(p *permission.Permission) *models.PermissionModel
	ToDomainList(modelList []*models.PermissionModel) []*permission.Permission
}

type PermissionMapperImpl struct{}

func NewPermissionMapper() PermissionMapper {
	return &PermissionMapperImpl{}
}

func (m *PermissionMapperImpl) ToDomain(model *models.PermissionModel) *permission.Permission {
	if model == nil {
		return nil
	}
	return permission.ReconstructPermission(
		model.ID,
		model.Code,
		model.Name,
		model.Description,
		permission.Type(model.Type),
		model.PluginPackName,
		model.IsDeprecated,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *PermissionMapperImpl) ToModel(p *permission.Permission) *models.PermissionModel {
	if p == nil {
		return nil
	}
	return &models.PermissionModel{
		ID:             p.ID(),
		Code:           p.Code(),
		Name:           p.Name(),
		Description:    p.Description(),
		Type:           string(p.Type()),
		PluginPackName: p.PluginPackName(),
		IsDeprecated:   p.IsDeprecated(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func (m *PermissionMapperImpl) ToDomainList(modelList []*models.PermissionModel) []*permission.Permission {
	result := make([]*permission.Permission, 0, len(modelList))
	for _, model := range modelList {
		result = append(result, m.ToDomain(model))
	}
	return result
}
