package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

// UserModel is the persistence form of user.User.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"uniqueIndex;not null;size:64"`
	Nickname     string `gorm:"size:100"`
	Email        string `gorm:"size:255;index"`
	PasswordHash string `gorm:"size:255"`
	IsRoot       bool   `gorm:"not null;default:false"`
	Status       int    `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
