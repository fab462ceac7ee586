package models

import (
	"time"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

// DictModel is one dictionary entry, unique on (group, key).
type DictModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Group       string    `gorm:"column:group_name;type:varchar(100);not null;uniqueIndex:idx_dict_group_key"`
	Key         string    `gorm:"column:dict_key;type:varchar(100);not null;uniqueIndex:idx_dict_group_key"`
	Value       string    `gorm:"column:value;type:text"`
	ValueType   string    `gorm:"column:value_type;type:varchar(20);not null;default:'string'"`
	Description string    `gorm:"column:description;type:varchar(500)"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DictModel) TableName() string {
	return constants.TableDict
}
