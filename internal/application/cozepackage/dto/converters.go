package dto

import (
	"fmt"

	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/shared/mapper"
)

func ToPackageRuleDTO(p *cozepackage.PackageConfig) *PackageRuleDTO {
	return &PackageRuleDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Duration:      p.DurationDays(),
		OriginalPrice: p.OriginalPrice().Yuan(),
		CurrentPrice:  p.CurrentPrice().Yuan(),
		Description:   p.Description(),
	}
}

func ToPackageRuleDTOList(pkgs []*cozepackage.PackageConfig) []*PackageRuleDTO {
	return mapper.MapSlice(pkgs, ToPackageRuleDTO)
}

// ToRule converts a request rule into the domain shape, rounding prices to
// the fen.
func (r *PackageRuleDTO) ToRule() (cozepackage.Rule, error) {
	original, err := vo.MoneyFromYuan(r.OriginalPrice)
	if err != nil {
		return cozepackage.Rule{}, fmt.Errorf("package %q original price: %w", r.Name, err)
	}
	current, err := vo.MoneyFromYuan(r.CurrentPrice)
	if err != nil {
		return cozepackage.Rule{}, fmt.Errorf("package %q current price: %w", r.Name, err)
	}
	return cozepackage.Rule{
		ID:            r.ID,
		Name:          r.Name,
		DurationDays:  r.Duration,
		OriginalPrice: original,
		CurrentPrice:  current,
		Description:   r.Description,
	}, nil
}

func ToOrderDTO(v *cozepackage.OrderView) *OrderDTO {
	o := v.Order
	pkgID := ""
	if o.PackageConfigID() != nil {
		pkgID = *o.PackageConfigID()
	}

	user := &UserInfoDTO{ID: o.UserID()}
	if v.User != nil {
		user.Username = v.User.Username
		user.Nickname = v.User.Nickname
	}

	return &OrderDTO{
		ID:       o.ID(),
		OrderNo:  o.OrderNo(),
		UserInfo: user,
		PackageInfo: &PackageInfoDTO{
			ID:            pkgID,
			Name:          o.PackageName(),
			Type:          o.PackageType().String(),
			Description:   o.PackageDescription(),
			OriginalPrice: o.PackageOriginalPrice().Yuan(),
			Duration:      o.PackageDuration(),
		},
		Quantity:       o.Quantity(),
		TotalAmount:    o.TotalAmount().Yuan(),
		DiscountAmount: o.DiscountAmount().Yuan(),
		ActualAmount:   o.PaidAmount().Yuan(),
		PaymentMethod:  o.PaymentMethod().String(),
		OrderStatus:    o.OrderStatus().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		RefundStatus:   o.RefundStatus().String(),
		TransactionID:  deref(o.TransactionID()),
		PrepayID:       deref(o.PrepayID()),
		PayID:          deref(o.PayID()),
		OrderSource:    o.OrderSource(),
		OrderType:      o.OrderType(),
		PaymentTime:    o.PaidAt(),
		ExpirationTime: o.ExpiredAt(),
		RefundAmount:   o.RefundAmount().Yuan(),
		RefundReason:   deref(o.RefundReason()),
		Remark:         deref(o.Remark()),
		Metadata:       o.Metadata(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func ToOrderDTOList(views []*cozepackage.OrderView) []*OrderDTO {
	return mapper.MapSlice(views, ToOrderDTO)
}

func ToStatisticsDTO(s *cozepackage.Statistics) *StatisticsDTO {
	return &StatisticsDTO{
		TotalOrder:        s.TotalOrder,
		TotalAmount:       s.TotalAmount.Yuan(),
		TotalRefundOrder:  s.TotalRefundOrder,
		TotalRefundAmount: s.TotalRefundAmount.Yuan(),
		TotalIncome:       s.TotalIncome().Yuan(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
