package models

import (
	"time"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

type PermissionModel struct {
	ID             uint    `gorm:"primarykey"`
	Code           string  `gorm:"not null;size:100;uniqueIndex"`
	Name           string  `gorm:"not null;size:100"`
	Description    string  `gorm:"type:text"`
	Type           string  `gorm:"not null;size:20;default:system"`
	PluginPackName *string `gorm:"size:100"`
	IsDeprecated   bool    `gorm:"not null;default:false;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}
