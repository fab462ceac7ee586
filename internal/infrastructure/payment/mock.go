package payment

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

var (
	_ paymentgateway.PaymentGateway   = (*MockGateway)(nil)
	_ paymentgateway.CallbackVerifier = (*MockGateway)(nil)
)

// MockGateway is an in-process gateway for development. Orders stay
// NOTPAY until MarkPaid is called, or settle on the first query when
// autoSettle is set.
type MockGateway struct {
	mu         sync.Mutex
	autoSettle bool
	amounts    map[string]int64
	paid       map[string]time.Time
	clock      biztime.Clock
}

func NewMockGateway(autoSettle bool, clock biztime.Clock) *MockGateway {
	if clock == nil {
		clock = biztime.SystemClock()
	}
	return &MockGateway{
		autoSettle: autoSettle,
		amounts:    make(map[string]int64),
		paid:       make(map[string]time.Time),
		clock:      clock,
	}
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) CreatePayment(_ context.Context, req paymentgateway.CreatePaymentRequest) (*paymentgateway.CreatePaymentResponse, error) {
	if req.OrderNo == "" {
		return nil, fmt.Errorf("order number is required")
	}
	m.mu.Lock()
	m.amounts[req.OrderNo] = req.Amount
	m.mu.Unlock()

	return &paymentgateway.CreatePaymentResponse{
		CodeURL:        "weixin://wxpay/bizpayurl?pr=MOCK_" + req.OrderNo,
		GatewayOrderNo: "MOCK_" + req.OrderNo,
	}, nil
}

// MarkPaid settles orderNo as if the buyer had scanned the code.
func (m *MockGateway) MarkPaid(orderNo string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.paid[orderNo]; !ok {
		m.paid[orderNo] = m.clock.Now()
	}
}

func (m *MockGateway) QueryPayment(_ context.Context, orderNo string) (*paymentgateway.QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	amount, known := m.amounts[orderNo]
	if !known {
		return &paymentgateway.QueryResult{OrderNo: orderNo, TradeState: "ORDERNOTEXIST"}, nil
	}
	paidAt, ok := m.paid[orderNo]
	if !ok && m.autoSettle {
		paidAt = m.clock.Now()
		m.paid[orderNo] = paidAt
		ok = true
	}
	if !ok {
		return &paymentgateway.QueryResult{OrderNo: orderNo, TradeState: "NOTPAY", Amount: amount}, nil
	}
	return &paymentgateway.QueryResult{
		OrderNo:       orderNo,
		TransactionID: "MOCK_TX_" + orderNo,
		TradeState:    paymentgateway.TradeStateSuccess,
		Amount:        amount,
		PaidAt:        &paidAt,
	}, nil
}

// VerifyCallback accepts form posts with order_no and marks the order paid.
func (m *MockGateway) VerifyCallback(ctx context.Context, req *http.Request) (*paymentgateway.CallbackData, error) {
	if err := req.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	orderNo := req.FormValue("order_no")
	if orderNo == "" {
		return nil, fmt.Errorf("missing order_no")
	}
	m.MarkPaid(orderNo)

	res, err := m.QueryPayment(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	return &paymentgateway.CallbackData{
		OrderNo:       res.OrderNo,
		TransactionID: res.TransactionID,
		TradeState:    res.TradeState,
		Amount:        res.Amount,
		PaidAt:        res.PaidAt,
	}, nil
}
