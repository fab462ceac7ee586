package valueobjects

type PackageType string

const (
	PackageTypeBasic        PackageType = "basic"
	PackageTypeProfessional PackageType = "professional"
	PackageTypeEnterprise   PackageType = "enterprise"
	PackageTypeCustom       PackageType = "custom"
)

func (t PackageType) IsValid() bool {
	switch t {
	case PackageTypeBasic, PackageTypeProfessional, PackageTypeEnterprise, PackageTypeCustom:
		return true
	}
	return false
}

func (t PackageType) String() string { return string(t) }

type PaymentMethod string

const (
	PaymentMethodWechat  PaymentMethod = "wechat"
	PaymentMethodAlipay  PaymentMethod = "alipay"
	PaymentMethodBank    PaymentMethod = "bank"
	PaymentMethodBalance PaymentMethod = "balance"
	PaymentMethodOther   PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodWechat, PaymentMethodAlipay, PaymentMethodBank, PaymentMethodBalance, PaymentMethodOther:
		return true
	}
	return false
}

func (m PaymentMethod) String() string { return string(m) }
