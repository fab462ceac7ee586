package mappers

import (
	"gorm.io/datatypes"

	"github.com/buildingai/cozepkg/internal/domain/page"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

type PageMapper interface {
	ToDomain(model *models.PageModel) *page.Page
	ToModel(p *page.Page) *models.PageModel
}

type PageMapperImpl struct{}

func NewPageMapper() PageMapper {
	return &PageMapperImpl{}
}

func (m *PageMapperImpl) ToDomain(model *models.PageModel) *page.Page {
	if model == nil {
		return nil
	}
	return page.Reconstruct(page.ReconstructParams{
		ID:        model.ID,
		Name:      model.Name,
		Data:      model.Data,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	})
}

func (m *PageMapperImpl) ToModel(p *page.Page) *models.PageModel {
	if p == nil {
		return nil
	}
	return &models.PageModel{
		ID:        p.ID(),
		Name:      p.Name(),
		Data:      datatypes.JSON(p.Data()),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}
