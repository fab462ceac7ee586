package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/page"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/db"
)

type PageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PageMapper
}

func NewPageRepository(gdb *gorm.DB) page.Repository {
	return &PageRepositoryImpl{db: gdb, mapper: mappers.NewPageMapper()}
}

func (r *PageRepositoryImpl) Create(ctx context.Context, p *page.Page) error {
	model := r.mapper.ToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", page.ErrDuplicatePage, p.Name())
		}
		return fmt.Errorf("failed to create page: %w", err)
	}
	p.SetID(model.ID)
	return nil
}

func (r *PageRepositoryImpl) GetByName(ctx context.Context, name string) (*page.Page, error) {
	var model models.PageModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, page.ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
