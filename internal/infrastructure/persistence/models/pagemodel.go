package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

type PageModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Name      string         `gorm:"not null;size:64;uniqueIndex"`
	Data      datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PageModel) TableName() string {
	return constants.TablePages
}

func (p *PageModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
