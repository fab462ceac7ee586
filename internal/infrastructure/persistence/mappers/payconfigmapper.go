package mappers

import (
	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

type PayConfigMapper interface {
	ToDomain(model *models.PayConfigModel) *payconfig.PayConfig
	ToModel(p *payconfig.PayConfig) *models.PayConfigModel
}

type PayConfigMapperImpl struct{}

func NewPayConfigMapper() PayConfigMapper {
	return &PayConfigMapperImpl{}
}

func (m *PayConfigMapperImpl) ToDomain(model *models.PayConfigModel) *payconfig.PayConfig {
	if model == nil {
		return nil
	}
	return payconfig.Reconstruct(payconfig.ReconstructParams{
		ID:           model.ID,
		Name:         model.Name,
		PayType:      payconfig.PayType(model.PayType),
		IsEnable:     model.IsEnable,
		IsDefault:    model.IsDefault,
		Logo:         model.Logo,
		Sort:         model.Sort,
		PayVersion:   model.PayVersion,
		MerchantType: model.MerchantType,
		MchID:        model.MchID,
		AppID:        model.AppID,
		APIKey:       model.APIKey,
		PaySignKey:   model.PaySignKey,
		Cert:         model.Cert,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
}

func (m *PayConfigMapperImpl) ToModel(p *payconfig.PayConfig) *models.PayConfigModel {
	if p == nil {
		return nil
	}
	return &models.PayConfigModel{
		ID:           p.ID(),
		Name:         p.Name(),
		PayType:      string(p.PayType()),
		IsEnable:     p.IsEnable(),
		IsDefault:    p.IsDefault(),
		Logo:         p.Logo(),
		Sort:         p.Sort(),
		PayVersion:   p.PayVersion(),
		MerchantType: p.MerchantType(),
		MchID:        p.MchID(),
		AppID:        p.AppID(),
		APIKey:       p.APIKey(),
		PaySignKey:   p.PaySignKey(),
		Cert:         p.Cert(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}
