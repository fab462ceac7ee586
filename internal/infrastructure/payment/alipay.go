package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/smartwalle/alipay/v3"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

var _ paymentgateway.PaymentGateway = (*AlipayGateway)(nil)

// AlipayGateway uses face-to-face pre-create, which returns a QR payload
// the same way WeChat Native pay does.
type AlipayGateway struct {
	client *alipay.Client
	cfg    sharedConfig.AlipayConfig
	logger logger.Interface
}

func NewAlipayGateway(cfg sharedConfig.AlipayConfig, logger logger.Interface, opts ...alipay.OptionFunc) (*AlipayGateway, error) {
	client, err := alipay.New(cfg.AppID, cfg.PrivateKey, cfg.Production, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create alipay client: %w", err)
	}
	if cfg.PublicKey != "" {
		if err := client.LoadAliPayPublicKey(cfg.PublicKey); err != nil {
			return nil, fmt.Errorf("failed to load alipay public key: %w", err)
		}
	}
	return &AlipayGateway{client: client, cfg: cfg, logger: logger}, nil
}

func (g *AlipayGateway) Name() string { return "alipay" }

func (g *AlipayGateway) CreatePayment(_ context.Context, req paymentgateway.CreatePaymentRequest) (*paymentgateway.CreatePaymentResponse, error) {
	p := alipay.TradePreCreate{}
	p.NotifyURL = req.NotifyURL
	if p.NotifyURL == "" {
		p.NotifyURL = g.cfg.NotifyURL
	}
	p.Subject = req.Subject
	p.OutTradeNo = req.OrderNo
	p.TotalAmount = fenToYuan(req.Amount)
	p.PassbackParams = req.Attach

	rsp, err := g.client.TradePreCreate(p)
	if err != nil {
		g.logger.Errorw("alipay precreate failed", "order_no", req.OrderNo, "error", err)
		return nil, fmt.Errorf("alipay precreate failed: %w", err)
	}
	if rsp.IsFailure() {
		return nil, fmt.Errorf("alipay precreate rejected: %s %s", rsp.SubCode, rsp.SubMsg)
	}

	return &paymentgateway.CreatePaymentResponse{CodeURL: rsp.QRCode}, nil
}

func (g *AlipayGateway) QueryPayment(_ context.Context, orderNo string) (*paymentgateway.QueryResult, error) {
	rsp, err := g.client.TradeQuery(alipay.TradeQuery{OutTradeNo: orderNo})
	if err != nil {
		return nil, fmt.Errorf("alipay trade query failed: %w", err)
	}
	if rsp.IsFailure() {
		// An order that was never scanned is unknown to Alipay.
		g.logger.Debugw("alipay trade query rejected", "order_no", orderNo, "sub_code", rsp.SubCode)
		return &paymentgateway.QueryResult{OrderNo: orderNo, TradeState: string(rsp.SubCode)}, nil
	}

	res := &paymentgateway.QueryResult{
		OrderNo:       orderNo,
		TransactionID: rsp.TradeNo,
		TradeState:    alipayTradeState(rsp.TradeStatus),
		Amount:        yuanToFen(rsp.TotalAmount),
	}
	if rsp.SendPayDate != "" {
		if t, err := time.ParseInLocation(time.DateTime, rsp.SendPayDate, shanghai); err == nil {
			utc := t.UTC()
			res.PaidAt = &utc
		}
	}
	return res, nil
}

// alipayTradeState maps Alipay's settled states onto the shared SUCCESS
// state.
func alipayTradeState(s alipay.TradeStatus) string {
	switch s {
	case alipay.TradeStatusSuccess, alipay.TradeStatusFinished:
		return paymentgateway.TradeStateSuccess
	default:
		return string(s)
	}
}
