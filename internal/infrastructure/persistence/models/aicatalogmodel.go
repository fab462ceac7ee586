package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

type AIProviderModel struct {
	ID                  string         `gorm:"primaryKey;size:36"`
	Provider            string         `gorm:"not null;size:64;uniqueIndex"`
	Name                string         `gorm:"not null;size:100"`
	IconURL             string         `gorm:"size:255"`
	SupportedModelTypes datatypes.JSON `gorm:"type:json"`
	IsBuiltIn           bool           `gorm:"not null;default:false"`
	IsActive            bool           `gorm:"not null;default:false"`
	SortOrder           int            `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (AIProviderModel) TableName() string {
	return constants.TableAIProviders
}

func (p *AIProviderModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type AIModelModel struct {
	ID          string         `gorm:"primaryKey;size:36"`
	ProviderID  string         `gorm:"not null;size:36;uniqueIndex:idx_provider_model"`
	Model       string         `gorm:"not null;size:128;uniqueIndex:idx_provider_model"`
	Name        string         `gorm:"not null;size:128"`
	ModelType   string         `gorm:"size:32;index"`
	Features    datatypes.JSON `gorm:"type:json"`
	ContextSize int            `gorm:"not null;default:0"`
	Config      datatypes.JSON `gorm:"type:json"`
	IsBuiltIn   bool           `gorm:"not null;default:false"`
	IsActive    bool           `gorm:"not null;default:true"`
	SortOrder   int            `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AIModelModel) TableName() string {
	return constants.TableAIModels
}

func (m *AIModelModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type KeyTemplateModel struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Name        string         `gorm:"not null;size:100;uniqueIndex"`
	Type        string         `gorm:"size:32"`
	TagName     string         `gorm:"size:64"`
	Icon        string         `gorm:"size:255"`
	FieldConfig datatypes.JSON `gorm:"type:json"`
	IsEnabled   bool           `gorm:"not null;default:true"`
	SortOrder   int            `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (KeyTemplateModel) TableName() string {
	return constants.TableKeyTemplates
}

func (t *KeyTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
