package mappers

import (
	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

type MenuMapper interface {
	ToDomain(model *models.MenuModel) *menu.Menu
	ToModel(m *menu.Menu) *models.MenuModel
	ToDomainList(modelList []*models.MenuModel) []*menu.Menu
}

type MenuMapperImpl struct{}

func NewMenuMapper() MenuMapper {
	return &MenuMapperImpl{}
}

func (m *MenuMapperImpl) ToDomain(model *models.MenuModel) *menu.Menu {
	if model == nil {
		return nil
	}
	return menu.ReconstructMenu(menu.ReconstructParams{
		ID:             model.ID,
		Code:           model.Code,
		Name:           model.Name,
		Path:           model.Path,
		Component:      model.Component,
		Icon:           model.Icon,
		Sort:           model.Sort,
		Type:           menu.Type(model.Type),
		ParentID:       model.ParentID,
		PermissionCode: model.PermissionCode,
		PluginPackName: model.PluginPackName,
		IsHidden:       model.IsHidden,
		SourceType:     model.SourceType,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}

func (m *MenuMapperImpl) ToModel(e *menu.Menu) *models.MenuModel {
	if e == nil {
		return nil
	}
	return &models.MenuModel{
		ID:             e.ID(),
		Code:           e.Code(),
		Name:           e.Name(),
		Path:           e.Path(),
		Component:      e.Component(),
		Icon:           e.Icon(),
		Sort:           e.Sort(),
		Type:           int(e.Type()),
		ParentID:       e.ParentID(),
		PermissionCode: e.PermissionCode(),
		PluginPackName: e.PluginPackName(),
		IsHidden:       e.IsHidden(),
		SourceType:     e.SourceType(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}

func (m *MenuMapperImpl) ToDomainList(modelList []*models.MenuModel) []*menu.Menu {
	result := make([]*menu.Menu, 0, len(modelList))
	for _, model := range modelList {
		result = append(result, m.ToDomain(model))
	}
	return result
}
