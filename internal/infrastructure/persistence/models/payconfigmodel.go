package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

type PayConfigModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"not null;size:100"`
	PayType      string `gorm:"not null;size:20;index"`
	IsEnable     bool   `gorm:"not null;default:true"`
	IsDefault    bool   `gorm:"not null;default:false"`
	Logo         string `gorm:"size:255"`
	Sort         int    `gorm:"not null;default:0"`
	PayVersion   string `gorm:"size:20"`
	MerchantType string `gorm:"size:20"`
	MchID        string `gorm:"size:64"`
	AppID        string `gorm:"size:64"`
	APIKey       string `gorm:"column:api_key;size:255"`
	PaySignKey   string `gorm:"type:text"`
	Cert         string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PayConfigModel) TableName() string {
	return constants.TablePayConfigs
}

func (p *PayConfigModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
