package payment

import (
	"context"
	"fmt"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// Gateways is what the HTTP layer needs from the configured gateways.
type Gateways struct {
	Registry *paymentgateway.Registry
	// Notify verifies WeChat pushes. Nil when no push-capable gateway is
	// configured.
	Notify paymentgateway.CallbackVerifier
	Mock   *MockGateway
}

// NewGateways registers a gateway per configured method. With cfg.Mock a
// mock gateway serves every method lacking a real one.
func NewGateways(ctx context.Context, cfg sharedConfig.PaymentConfig, log logger.Interface) (*Gateways, error) {
	out := &Gateways{Registry: paymentgateway.NewRegistry()}

	if cfg.Wechat.Enabled() {
		g, err := NewWechatNativeGateway(ctx, cfg.Wechat, cfg.Timeout(), log.Named("wechatpay"))
		if err != nil {
			return nil, fmt.Errorf("failed to init wechat gateway: %w", err)
		}
		out.Registry.Register("wechat", g)
		out.Notify = g
		log.Infow("payment gateway registered", "method", "wechat")
	}

	if cfg.Alipay.Enabled() {
		g, err := NewAlipayGateway(cfg.Alipay, log.Named("alipay"))
		if err != nil {
			return nil, fmt.Errorf("failed to init alipay gateway: %w", err)
		}
		out.Registry.Register("alipay", g)
		log.Infow("payment gateway registered", "method", "alipay")
	}

	if cfg.Mock {
		out.Mock = NewMockGateway(false, nil)
		out.Registry.SetFallback(out.Mock)
		if out.Notify == nil {
			out.Notify = out.Mock
		}
		log.Warnw("mock payment gateway enabled")
	}

	return out, nil
}
