package paymentgateway

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// TradeStateSuccess is the settled state reported by QueryPayment.
const TradeStateSuccess = "SUCCESS"

var ErrUnsupportedMethod = errors.New("payment method is not supported")

// PaymentGateway issues payment intents and reports their settlement.
type PaymentGateway interface {
	Name() string
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error)
	QueryPayment(ctx context.Context, orderNo string) (*QueryResult, error)
}

// CallbackVerifier is implemented by gateways that push settlement
// notifications.
type CallbackVerifier interface {
	VerifyCallback(ctx context.Context, req *http.Request) (*CallbackData, error)
}

type CreatePaymentRequest struct {
	OrderNo string
	Amount  int64 // fen
	Subject string
	// Attach is echoed back by the gateway, e.g. "from=coze".
	Attach    string
	NotifyURL string
}

type CreatePaymentResponse struct {
	// CodeURL is the QR payload or redirect URL shown to the buyer.
	CodeURL        string
	GatewayOrderNo string
}

type QueryResult struct {
	OrderNo       string
	TransactionID string
	TradeState    string
	Amount        int64
	PaidAt        *time.Time
}

func (r *QueryResult) Settled() bool {
	return r != nil && r.TradeState == TradeStateSuccess
}

type CallbackData struct {
	OrderNo       string
	TransactionID string
	TradeState    string
	Amount        int64 // fen
	PaidAt        *time.Time
}

// Selector picks the gateway for a payment method.
type Selector interface {
	For(method string) (PaymentGateway, error)
}
