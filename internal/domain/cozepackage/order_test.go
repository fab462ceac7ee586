package cozepackage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func testPackage(t *testing.T, price float64) *PackageConfig {
	t.Helper()
	pkg, err := NewPackageConfig("Monthly", 30, yuan(99), yuan(price), "30 days")
	require.NoError(t, err)
	pkg.SetID("pkg-1")
	return pkg
}

func newPendingOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("COZE20250301080000000001", "user-1", testPackage(t, 79.99), "", testNow)
	require.NoError(t, err)
	o.SetID("order-1")
	return o
}

func paidOrder(t *testing.T) *Order {
	t.Helper()
	o := newPendingOrder(t)
	require.True(t, o.MarkPaid("wx-txn-1", testNow))
	return o
}

func TestNewOrder_SnapshotsPackage(t *testing.T) {
	o := newPendingOrder(t)

	assert.Equal(t, yuan(79.99), o.TotalAmount())
	assert.Equal(t, "79.99", o.TotalAmount().String())
	assert.Equal(t, vo.OrderStatusPending, o.OrderStatus())
	assert.Equal(t, vo.PaymentStatusUnpaid, o.PaymentStatus())
	assert.Equal(t, vo.RefundStatusNone, o.RefundStatus())
	assert.True(t, o.PaidAmount().IsZero())
	assert.Equal(t, vo.PaymentMethodWechat, o.PaymentMethod())
	assert.Equal(t, vo.PackageTypeBasic, o.PackageType())
	assert.Equal(t, "Monthly", o.PackageName())
	assert.Equal(t, 30, o.PackageDuration())
	assert.Equal(t, yuan(99), o.PackageOriginalPrice())
	require.NotNil(t, o.PackageConfigID())
	assert.Equal(t, "pkg-1", *o.PackageConfigID())
	assert.Equal(t, DefaultOrderSource, o.OrderSource())
	assert.Equal(t, DefaultOrderType, o.OrderType())
}

func TestNewOrder_InvalidInput(t *testing.T) {
	pkg := testPackage(t, 10)

	_, err := NewOrder("", "u", pkg, vo.PaymentMethodWechat, testNow)
	assert.Error(t, err)
	_, err = NewOrder("N", "", pkg, vo.PaymentMethodWechat, testNow)
	assert.Error(t, err)
	_, err = NewOrder("N", "u", nil, vo.PaymentMethodWechat, testNow)
	assert.ErrorIs(t, err, ErrPackageNotFound)
	_, err = NewOrder("N", "u", pkg, vo.PaymentMethod("paypal"), testNow)
	assert.Error(t, err)
}

func TestOrder_AttachPrepay(t *testing.T) {
	o := newPendingOrder(t)
	require.NoError(t, o.AttachPrepay("weixin://wxpay/1", testNow))
	require.NoError(t, o.AttachPrepay("weixin://wxpay/2", testNow))
	assert.Equal(t, "weixin://wxpay/2", *o.PrepayID())

	paid := paidOrder(t)
	assert.ErrorIs(t, paid.AttachPrepay("weixin://wxpay/3", testNow), ErrOrderNotPending)
}

func TestOrder_MarkPaid(t *testing.T) {
	o := newPendingOrder(t)
	assert.False(t, o.IsSettled())

	require.True(t, o.MarkPaid("txn-1", testNow))
	assert.True(t, o.IsSettled())
	assert.Equal(t, vo.OrderStatusCompleted, o.OrderStatus())
	assert.Equal(t, vo.PaymentStatusPaid, o.PaymentStatus())
	assert.Equal(t, o.TotalAmount(), o.PaidAmount())
	assert.Equal(t, "txn-1", *o.PayID())
	assert.Equal(t, testNow.Add(30*24*time.Hour), *o.ExpiredAt())
}

func TestOrder_MarkPaidNeverRewritesSettlement(t *testing.T) {
	o := paidOrder(t)
	firstPaidAt := *o.PaidAt()

	assert.False(t, o.MarkPaid("txn-other", testNow.Add(time.Hour)))
	assert.Equal(t, firstPaidAt, *o.PaidAt())
	assert.Equal(t, "wx-txn-1", *o.PayID())
}

func TestOrder_RequestRefund(t *testing.T) {
	t.Run("full refund by owner", func(t *testing.T) {
		o := paidOrder(t)
		err := o.RequestRefund(RefundRequest{RequesterID: "user-1", Reason: "not needed"}, testNow)
		require.NoError(t, err)
		assert.Equal(t, vo.RefundStatusPending, o.RefundStatus())
		assert.Equal(t, o.PaidAmount(), o.RefundAmount())
		assert.Equal(t, "not needed", *o.RefundReason())
	})

	t.Run("custom reason and remark", func(t *testing.T) {
		o := paidOrder(t)
		amount := yuan(10)
		err := o.RequestRefund(RefundRequest{
			RequesterID:  "user-1",
			Reason:       RefundReasonOther,
			CustomReason: "changed my mind",
			Amount:       &amount,
			Remark:       "call back",
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, "changed my mind", *o.RefundReason())
		assert.Equal(t, amount, o.RefundAmount())
		assert.Equal(t, "call back", *o.Remark())
	})

	t.Run("non owner", func(t *testing.T) {
		o := paidOrder(t)
		err := o.RequestRefund(RefundRequest{RequesterID: "user-2"}, testNow)
		assert.ErrorIs(t, err, ErrNotOrderOwner)
		assert.Equal(t, vo.RefundStatusNone, o.RefundStatus())
	})

	t.Run("not completed", func(t *testing.T) {
		o := newPendingOrder(t)
		err := o.RequestRefund(RefundRequest{RequesterID: "user-1"}, testNow)
		assert.ErrorIs(t, err, ErrOrderNotCompleted)
		assert.Equal(t, vo.RefundStatusNone, o.RefundStatus())
	})

	t.Run("completed but unpaid", func(t *testing.T) {
		o := ReconstructOrder(OrderReconstructParams{
			ID: "o", UserID: "user-1",
			OrderStatus:   vo.OrderStatusCompleted,
			PaymentStatus: vo.PaymentStatusUnpaid,
			RefundStatus:  vo.RefundStatusNone,
		})
		assert.ErrorIs(t, o.RequestRefund(RefundRequest{RequesterID: "user-1"}, testNow), ErrOrderNotPaid)
	})

	t.Run("already requested", func(t *testing.T) {
		o := paidOrder(t)
		require.NoError(t, o.RequestRefund(RefundRequest{RequesterID: "user-1"}, testNow))
		err := o.RequestRefund(RefundRequest{RequesterID: "user-1"}, testNow)
		assert.ErrorIs(t, err, ErrRefundAlreadyRequested)
	})

	t.Run("exceeds paid amount", func(t *testing.T) {
		o := paidOrder(t)
		tooMuch := o.PaidAmount().Add(vo.NewMoney(1))
		err := o.RequestRefund(RefundRequest{RequesterID: "user-1", Amount: &tooMuch}, testNow)
		assert.ErrorIs(t, err, ErrRefundExceedsPaid)
		assert.Equal(t, vo.RefundStatusNone, o.RefundStatus())
		assert.False(t, o.RefundAmount().GreaterThan(o.PaidAmount()))
	})

	t.Run("non positive amount", func(t *testing.T) {
		o := paidOrder(t)
		zero := vo.NewMoney(0)
		err := o.RequestRefund(RefundRequest{RequesterID: "user-1", Amount: &zero}, testNow)
		assert.ErrorIs(t, err, ErrInvalidRefundAmount)
	})
}

func TestOrder_RemainingDays(t *testing.T) {
	expires := testNow.Add(10 * 24 * time.Hour)
	o := ReconstructOrder(OrderReconstructParams{
		OrderStatus:   vo.OrderStatusCompleted,
		PaymentStatus: vo.PaymentStatusPaid,
		ExpiredAt:     &expires,
	})

	assert.Equal(t, 10, o.RemainingDays(testNow))
	assert.Equal(t, 10, o.RemainingDays(testNow.Add(time.Minute)))
	assert.Equal(t, 1, o.RemainingDays(expires.Add(-time.Second)))
	assert.Equal(t, 0, o.RemainingDays(expires))
	assert.Equal(t, 0, o.RemainingDays(expires.Add(48*time.Hour)))
	assert.True(t, o.IsActiveAt(testNow))
	assert.False(t, o.IsActiveAt(expires))

	assert.Equal(t, 0, newPendingOrder(t).RemainingDays(testNow))
}

func TestSortClause(t *testing.T) {
	tests := []struct {
		field, order string
		column, dir  string
	}{
		{"", "", "created_at", "DESC"},
		{"createdAt", "asc", "created_at", "ASC"},
		{"actualAmount", "ASC", "paid_amount", "ASC"},
		{"paymentTime", "desc", "paid_at", "DESC"},
		{"packageOriginalPrice", "sideways", "package_original_price", "DESC"},
		{"user_id; DROP TABLE orders", "ASC", "created_at", "DESC"},
		{"refundAmount", "ASC", "created_at", "DESC"},
	}
	for _, tt := range tests {
		column, dir := SortClause(tt.field, tt.order)
		assert.Equal(t, tt.column, column, tt.field)
		assert.Equal(t, tt.dir, dir, tt.field)
	}
}

func TestStatistics_TotalIncome(t *testing.T) {
	s := Statistics{TotalOrder: 15, TotalAmount: yuan(1200), TotalRefundOrder: 4, TotalRefundAmount: yuan(300)}
	assert.Equal(t, yuan(900), s.TotalIncome())
}
