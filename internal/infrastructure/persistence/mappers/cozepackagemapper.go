package mappers

import (
	"fmt"

	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

// PackageConfigMapper converts package configs. Prices are persisted in fen.
type PackageConfigMapper interface {
	ToDomain(model *models.PackageConfigModel) *cozepackage.PackageConfig
	ToModel(pkg *cozepackage.PackageConfig) *models.PackageConfigModel
	ToDomainList(modelList []*models.PackageConfigModel) []*cozepackage.PackageConfig
}

type PackageConfigMapperImpl struct{}

func NewPackageConfigMapper() PackageConfigMapper {
	return &PackageConfigMapperImpl{}
}

func (m *PackageConfigMapperImpl) ToDomain(model *models.PackageConfigModel) *cozepackage.PackageConfig {
	if model == nil {
		return nil
	}
	return cozepackage.ReconstructPackageConfig(
		model.ID,
		model.Name,
		model.DurationDays,
		vo.NewMoney(model.OriginalPriceFen),
		vo.NewMoney(model.CurrentPriceFen),
		model.Description,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *PackageConfigMapperImpl) ToModel(pkg *cozepackage.PackageConfig) *models.PackageConfigModel {
	if pkg == nil {
		return nil
	}
	return &models.PackageConfigModel{
		ID:               pkg.ID(),
		Name:             pkg.Name(),
		DurationDays:     pkg.DurationDays(),
		OriginalPriceFen: pkg.OriginalPrice().Fen(),
		CurrentPriceFen:  pkg.CurrentPrice().Fen(),
		Description:      pkg.Description(),
		CreatedAt:        pkg.CreatedAt(),
		UpdatedAt:        pkg.UpdatedAt(),
	}
}

func (m *PackageConfigMapperImpl) ToDomainList(modelList []*models.PackageConfigModel) []*cozepackage.PackageConfig {
	result := make([]*cozepackage.PackageConfig, 0, len(modelList))
	for _, model := range modelList {
		result = append(result, m.ToDomain(model))
	}
	return result
}

// OrderMapper converts orders, including the JSON metadata column.
type OrderMapper interface {
	ToDomain(model *models.OrderModel) (*cozepackage.Order, error)
	ToModel(order *cozepackage.Order) (*models.OrderModel, error)
	ToDomainList(modelList []*models.OrderModel) ([]*cozepackage.Order, error)
}

type OrderMapperImpl struct{}

func NewOrderMapper() OrderMapper {
	return &OrderMapperImpl{}
}

func (m *OrderMapperImpl) ToDomain(model *models.OrderModel) (*cozepackage.Order, error) {
	if model == nil {
		return nil, nil
	}
	metadata := map[string]interface{}{}
	if err := fromJSON(model.Metadata, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata of order %s: %w", model.OrderNo, err)
	}
	return cozepackage.ReconstructOrder(cozepackage.OrderReconstructParams{
		ID:                   model.ID,
		OrderNo:              model.OrderNo,
		UserID:               model.UserID,
		PackageConfigID:      model.PackageConfigID,
		PackageName:          model.PackageName,
		PackageType:          vo.PackageType(model.PackageType),
		PackageDescription:   model.PackageDescription,
		PackageOriginalPrice: vo.NewMoney(model.PackageOriginalPriceFen),
		PackageCurrentPrice:  vo.NewMoney(model.PackageCurrentPriceFen),
		PackageDuration:      model.PackageDuration,
		Quantity:             model.Quantity,
		TotalAmount:          vo.NewMoney(model.TotalAmountFen),
		DiscountAmount:       vo.NewMoney(model.DiscountAmountFen),
		PaidAmount:           vo.NewMoney(model.PaidAmountFen),
		PaymentMethod:        vo.PaymentMethod(model.PaymentMethod),
		OrderStatus:          vo.OrderStatus(model.OrderStatus),
		PaymentStatus:        vo.PaymentStatus(model.PaymentStatus),
		RefundStatus:         vo.RefundStatus(model.RefundStatus),
		TransactionID:        model.TransactionID,
		PrepayID:             model.PrepayID,
		PayID:                model.PayID,
		OrderSource:          model.OrderSource,
		OrderType:            model.OrderType,
		PaidAt:               model.PaidAt,
		ExpiredAt:            model.ExpiredAt,
		RefundAmount:         vo.NewMoney(model.RefundAmountFen),
		RefundReason:         model.RefundReason,
		RefundAt:             model.RefundAt,
		Remark:               model.Remark,
		Metadata:             metadata,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}), nil
}

func (m *OrderMapperImpl) ToModel(o *cozepackage.Order) (*models.OrderModel, error) {
	if o == nil {
		return nil, nil
	}
	metadata, err := toJSON(o.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata of order %s: %w", o.OrderNo(), err)
	}
	return &models.OrderModel{
		ID:                      o.ID(),
		OrderNo:                 o.OrderNo(),
		UserID:                  o.UserID(),
		PackageConfigID:         o.PackageConfigID(),
		PackageName:             o.PackageName(),
		PackageType:             string(o.PackageType()),
		PackageDescription:      o.PackageDescription(),
		PackageOriginalPriceFen: o.PackageOriginalPrice().Fen(),
		PackageCurrentPriceFen:  o.PackageCurrentPrice().Fen(),
		PackageDuration:         o.PackageDuration(),
		Quantity:                o.Quantity(),
		TotalAmountFen:          o.TotalAmount().Fen(),
		DiscountAmountFen:       o.DiscountAmount().Fen(),
		PaidAmountFen:           o.PaidAmount().Fen(),
		PaymentMethod:           string(o.PaymentMethod()),
		OrderStatus:             string(o.OrderStatus()),
		PaymentStatus:           string(o.PaymentStatus()),
		RefundStatus:            string(o.RefundStatus()),
		TransactionID:           o.TransactionID(),
		PrepayID:                o.PrepayID(),
		PayID:                   o.PayID(),
		OrderSource:             o.OrderSource(),
		OrderType:               o.OrderType(),
		PaidAt:                  o.PaidAt(),
		ExpiredAt:               o.ExpiredAt(),
		RefundAmountFen:         o.RefundAmount().Fen(),
		RefundReason:            o.RefundReason(),
		RefundAt:                o.RefundAt(),
		Remark:                  o.Remark(),
		Metadata:                metadata,
		CreatedAt:               o.CreatedAt(),
		UpdatedAt:               o.UpdatedAt(),
	}, nil
}

func (m *OrderMapperImpl) ToDomainList(modelList []*models.OrderModel) ([]*cozepackage.Order, error) {
	result := make([]*cozepackage.Order, 0, len(modelList))
	for _, model := range modelList {
		o, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}
