package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/constants"
)

// PackageConfigModel stores prices in fen.
type PackageConfigModel struct {
	ID               string    `gorm:"primaryKey;size:36"`
	Name             string    `gorm:"not null;size:64;uniqueIndex"`
	DurationDays     int       `gorm:"column:duration;not null"`
	OriginalPriceFen int64     `gorm:"column:original_price;not null;default:0"`
	CurrentPriceFen  int64     `gorm:"column:current_price;not null;default:0"`
	Description      string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (PackageConfigModel) TableName() string {
	return constants.TablePackageConfigs
}

func (p *PackageConfigModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// OrderModel stores amounts in fen. The package columns are a snapshot taken
// when the order was placed.
type OrderModel struct {
	ID                      string  `gorm:"primaryKey;size:36"`
	OrderNo                 string  `gorm:"not null;size:64;uniqueIndex"`
	UserID                  string  `gorm:"not null;size:36;index"`
	PackageConfigID         *string `gorm:"size:36;index"`
	PackageName             string  `gorm:"not null;size:64"`
	PackageType             string  `gorm:"not null;size:20;default:basic"`
	PackageDescription      string  `gorm:"type:text"`
	PackageOriginalPriceFen int64   `gorm:"column:package_original_price;not null;default:0"`
	PackageCurrentPriceFen  int64   `gorm:"column:package_current_price;not null;default:0"`
	PackageDuration         int     `gorm:"not null;default:0"`
	Quantity                int     `gorm:"not null;default:1"`
	TotalAmountFen          int64   `gorm:"column:total_amount;not null;default:0"`
	DiscountAmountFen       int64   `gorm:"column:discount_amount;not null;default:0"`
	PaidAmountFen           int64   `gorm:"column:paid_amount;not null;default:0"`
	PaymentMethod           string  `gorm:"not null;size:20;index"`
	OrderStatus             string  `gorm:"not null;size:20;index"`
	PaymentStatus           string  `gorm:"not null;size:20;index"`
	RefundStatus            string  `gorm:"not null;size:20;index"`
	TransactionID           *string `gorm:"size:64"`
	PrepayID                *string `gorm:"type:text"`
	PayID                   *string `gorm:"size:64"`
	OrderSource             string  `gorm:"size:20"`
	OrderType               string  `gorm:"size:20"`
	PaidAt                  *time.Time
	ExpiredAt               *time.Time `gorm:"index"`
	RefundAmountFen         int64      `gorm:"column:refund_amount;not null;default:0"`
	RefundReason            *string    `gorm:"size:255"`
	RefundAt                *time.Time
	Remark                  *string        `gorm:"type:text"`
	Metadata                datatypes.JSON `gorm:"type:json"`
	CreatedAt               time.Time      `gorm:"index"`
	UpdatedAt               time.Time
}

func (OrderModel) TableName() string {
	return constants.TableOrders
}

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
