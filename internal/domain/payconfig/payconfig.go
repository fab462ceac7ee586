package payconfig

import (
	"fmt"
	"time"
)

type PayType string

const (
	PayTypeWechat PayType = "wechat"
	PayTypeAlipay PayType = "alipay"
)

func (t PayType) IsValid() bool {
	return t == PayTypeWechat || t == PayTypeAlipay
}

const (
	PayVersionV3         = "V3"
	MerchantTypeOrdinary = "ordinary"
)

// PayConfig is a payment channel shown to buyers.
type PayConfig struct {
	id           string
	name         string
	payType      PayType
	isEnable     bool
	isDefault    bool
	logo         string
	sort         int
	payVersion   string
	merchantType string
	mchID        string
	appID        string
	apiKey       string
	paySignKey   string
	cert         string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPayConfig(name string, payType PayType, logo string, sort int) (*PayConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("pay config name is required")
	}
	if !payType.IsValid() {
		return nil, fmt.Errorf("invalid pay type: %s", payType)
	}
	now := time.Now().UTC()
	return &PayConfig{
		name:         name,
		payType:      payType,
		isEnable:     true,
		logo:         logo,
		sort:         sort,
		payVersion:   PayVersionV3,
		merchantType: MerchantTypeOrdinary,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewDefaultWechat is the channel seeded on install.
func NewDefaultWechat() *PayConfig {
	p, _ := NewPayConfig("WeChat Pay", PayTypeWechat, "/static/images/wxpay.png", 0)
	p.isDefault = true
	return p
}

type ReconstructParams struct {
	ID           string
	Name         string
	PayType      PayType
	IsEnable     bool
	IsDefault    bool
	Logo         string
	Sort         int
	PayVersion   string
	MerchantType string
	MchID        string
	AppID        string
	APIKey       string
	PaySignKey   string
	Cert         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func Reconstruct(p ReconstructParams) *PayConfig {
	return &PayConfig{
		id:           p.ID,
		name:         p.Name,
		payType:      p.PayType,
		isEnable:     p.IsEnable,
		isDefault:    p.IsDefault,
		logo:         p.Logo,
		sort:         p.Sort,
		payVersion:   p.PayVersion,
		merchantType: p.MerchantType,
		mchID:        p.MchID,
		appID:        p.AppID,
		apiKey:       p.APIKey,
		paySignKey:   p.PaySignKey,
		cert:         p.Cert,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}
}

func (p *PayConfig) ID() string           { return p.id }
func (p *PayConfig) SetID(id string)      { p.id = id }
func (p *PayConfig) Name() string         { return p.name }
func (p *PayConfig) PayType() PayType     { return p.payType }
func (p *PayConfig) IsEnable() bool       { return p.isEnable }
func (p *PayConfig) IsDefault() bool      { return p.isDefault }
func (p *PayConfig) Logo() string         { return p.logo }
func (p *PayConfig) Sort() int            { return p.sort }
func (p *PayConfig) PayVersion() string   { return p.payVersion }
func (p *PayConfig) MerchantType() string { return p.merchantType }
func (p *PayConfig) MchID() string        { return p.mchID }
func (p *PayConfig) AppID() string        { return p.appID }
func (p *PayConfig) APIKey() string       { return p.apiKey }
func (p *PayConfig) PaySignKey() string   { return p.paySignKey }
func (p *PayConfig) Cert() string         { return p.cert }
func (p *PayConfig) CreatedAt() time.Time { return p.createdAt }
func (p *PayConfig) UpdatedAt() time.Time { return p.updatedAt }
