package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromYuan(t *testing.T) {
	tests := []struct {
		yuan float64
		fen  int64
	}{
		{79.99, 7999},
		{1999.99, 199999},
		{0.1 + 0.2, 30},
		{0, 0},
	}
	for _, tt := range tests {
		m, err := MoneyFromYuan(tt.yuan)
		require.NoError(t, err)
		assert.Equal(t, tt.fen, m.Fen(), "%v", tt.yuan)
	}
}

func TestMoneyFromYuan_RejectsUnrepresentable(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e14, maxYuan + 1} {
		m, err := MoneyFromYuan(v)
		assert.ErrorIs(t, err, ErrAmountOutOfRange, "%v", v)
		assert.True(t, m.IsZero())
	}

	m, err := MoneyFromYuan(maxYuan)
	require.NoError(t, err)
	assert.Equal(t, int64(maxYuan*100), m.Fen())
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(120000)
	b := NewMoney(30000)

	assert.Equal(t, int64(90000), a.Sub(b).Fen())
	assert.Equal(t, int64(150000), a.Add(b).Fen())
	assert.Equal(t, "900.00", a.Sub(b).String())
	assert.True(t, a.GreaterThan(b))
	assert.True(t, b.Sub(a).IsNegative())
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsSettled())
	assert.True(t, OrderStatusPaid.IsSettled())
	assert.False(t, OrderStatusPending.IsSettled())
	assert.False(t, OrderStatus("refunded").IsValid())
	assert.True(t, PaymentStatusPartialRefund.IsValid())
	assert.True(t, RefundStatusProcessing.IsValid())
	assert.False(t, PaymentMethod("paypal").IsValid())
	assert.True(t, PackageTypeCustom.IsValid())
}
