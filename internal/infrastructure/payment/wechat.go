package payment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/auth/verifiers"
	"github.com/wechatpay-apiv3/wechatpay-go/core/downloader"
	"github.com/wechatpay-apiv3/wechatpay-go/core/notify"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

var (
	_ paymentgateway.PaymentGateway   = (*WechatNativeGateway)(nil)
	_ paymentgateway.CallbackVerifier = (*WechatNativeGateway)(nil)
)

// WechatNativeGateway pays by QR code (Native pay) and verifies pushes with
// the platform certificates downloaded by the SDK.
type WechatNativeGateway struct {
	client  *core.Client
	handler *notify.Handler
	cfg     sharedConfig.WechatPayConfig
	logger  logger.Interface
}

func NewWechatNativeGateway(ctx context.Context, cfg sharedConfig.WechatPayConfig, timeout time.Duration, logger logger.Interface) (*WechatNativeGateway, error) {
	mchPrivateKey, err := utils.LoadPrivateKeyWithPath(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load wechat merchant private key: %w", err)
	}

	opts := []core.ClientOption{
		option.WithWechatPayAutoAuthCipher(cfg.MchID, cfg.SerialNo, mchPrivateKey, cfg.APIv3Key),
	}
	if timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	client, err := core.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create wechat pay client: %w", err)
	}

	certVisitor := downloader.MgrInstance().GetCertificateVisitor(cfg.MchID)
	handler := notify.NewNotifyHandler(cfg.APIv3Key, verifiers.NewSHA256WithRSAVerifier(certVisitor))

	return &WechatNativeGateway{
		client:  client,
		handler: handler,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (g *WechatNativeGateway) Name() string { return "wechat" }

func (g *WechatNativeGateway) CreatePayment(ctx context.Context, req paymentgateway.CreatePaymentRequest) (*paymentgateway.CreatePaymentResponse, error) {
	notifyURL := req.NotifyURL
	if notifyURL == "" {
		notifyURL = g.cfg.NotifyURL
	}

	svc := native.NativeApiService{Client: g.client}
	resp, result, err := svc.Prepay(ctx, native.PrepayRequest{
		Appid:       core.String(g.cfg.AppID),
		Mchid:       core.String(g.cfg.MchID),
		Description: core.String(req.Subject),
		OutTradeNo:  core.String(req.OrderNo),
		Attach:      core.String(req.Attach),
		NotifyUrl:   core.String(notifyURL),
		Amount: &native.Amount{
			Total:    core.Int64(req.Amount),
			Currency: core.String("CNY"),
		},
	})
	if err != nil {
		g.logger.Errorw("wechat native prepay failed", "order_no", req.OrderNo, "error", err, "status", statusOf(result))
		return nil, fmt.Errorf("wechat prepay failed: %w", err)
	}
	if resp.CodeUrl == nil {
		return nil, fmt.Errorf("wechat prepay returned no code_url")
	}

	return &paymentgateway.CreatePaymentResponse{CodeURL: *resp.CodeUrl}, nil
}

func (g *WechatNativeGateway) QueryPayment(ctx context.Context, orderNo string) (*paymentgateway.QueryResult, error) {
	svc := native.NativeApiService{Client: g.client}
	tx, result, err := svc.QueryOrderByOutTradeNo(ctx, native.QueryOrderByOutTradeNoRequest{
		OutTradeNo: core.String(orderNo),
		Mchid:      core.String(g.cfg.MchID),
	})
	if err != nil {
		g.logger.Warnw("wechat order query failed", "order_no", orderNo, "error", err, "status", statusOf(result))
		return nil, fmt.Errorf("wechat order query failed: %w", err)
	}

	return transactionResult(orderNo, tx), nil
}

func (g *WechatNativeGateway) VerifyCallback(ctx context.Context, req *http.Request) (*paymentgateway.CallbackData, error) {
	tx := new(payments.Transaction)
	if _, err := g.handler.ParseNotifyRequest(ctx, req, tx); err != nil {
		return nil, fmt.Errorf("failed to verify wechat notification: %w", err)
	}

	res := transactionResult("", tx)
	return &paymentgateway.CallbackData{
		OrderNo:       res.OrderNo,
		TransactionID: res.TransactionID,
		TradeState:    res.TradeState,
		Amount:        res.Amount,
		PaidAt:        res.PaidAt,
	}, nil
}

func transactionResult(orderNo string, tx *payments.Transaction) *paymentgateway.QueryResult {
	res := &paymentgateway.QueryResult{OrderNo: orderNo}
	if tx == nil {
		return res
	}
	if tx.OutTradeNo != nil {
		res.OrderNo = *tx.OutTradeNo
	}
	if tx.TransactionId != nil {
		res.TransactionID = *tx.TransactionId
	}
	if tx.TradeState != nil {
		res.TradeState = *tx.TradeState
	}
	if tx.Amount != nil && tx.Amount.Total != nil {
		res.Amount = *tx.Amount.Total
	}
	if tx.SuccessTime != nil {
		if t, err := time.Parse(time.RFC3339, *tx.SuccessTime); err == nil {
			utc := t.UTC()
			res.PaidAt = &utc
		}
	}
	return res
}

func statusOf(r *core.APIResult) int {
	if r == nil || r.Response == nil {
		return 0
	}
	return r.Response.StatusCode
}
