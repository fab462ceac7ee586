package models

import (
	"time"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

type MenuModel struct {
	ID             uint    `gorm:"primarykey"`
	Code           *string `gorm:"size:100;uniqueIndex"`
	Name           string  `gorm:"not null;size:100"`
	Path           string  `gorm:"size:255"`
	Component      string  `gorm:"size:255"`
	Icon           string  `gorm:"size:100"`
	Sort           int     `gorm:"not null;default:0"`
	Type           int     `gorm:"not null;default:0"`
	ParentID       *uint   `gorm:"index"`
	PermissionCode *string `gorm:"size:100;index"`
	PluginPackName *string `gorm:"size:100"`
	IsHidden       bool    `gorm:"not null;default:false"`
	SourceType     int     `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (MenuModel) TableName() string {
	return constants.TableMenus
}
