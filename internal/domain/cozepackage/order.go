package cozepackage

import (
	"fmt"
	"math"
	"strings"
	"time"

	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
)

const (
	OrderNoPrefix      = "COZE"
	DefaultOrderSource = "web"
	DefaultOrderType   = "coze-package"
	RefundReasonOther  = "other"
)

// Order is a purchase of one package. Package fields are snapshots taken at
// creation and survive later edits or deletion of the package config.
type Order struct {
	id                   string
	orderNo              string
	userID               string
	packageConfigID      *string
	packageName          string
	packageType          vo.PackageType
	packageDescription   string
	packageOriginalPrice vo.Money
	packageCurrentPrice  vo.Money
	packageDuration      int
	quantity             int
	totalAmount          vo.Money
	discountAmount       vo.Money
	paidAmount           vo.Money
	paymentMethod        vo.PaymentMethod
	orderStatus          vo.OrderStatus
	paymentStatus        vo.PaymentStatus
	refundStatus         vo.RefundStatus
	transactionID        *string
	prepayID             *string
	payID                *string
	orderSource          string
	orderType            string
	paidAt               *time.Time
	expiredAt            *time.Time
	refundAmount         vo.Money
	refundReason         *string
	refundAt             *time.Time
	remark               *string
	metadata             map[string]interface{}
	createdAt            time.Time
	updatedAt            time.Time
}

// NewOrder snapshots pkg into a pending, unpaid order.
func NewOrder(orderNo, userID string, pkg *PackageConfig, method vo.PaymentMethod, now time.Time) (*Order, error) {
	if orderNo == "" {
		return nil, fmt.Errorf("order number is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	if method == "" {
		method = vo.PaymentMethodWechat
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}

	pkgID := pkg.ID()
	return &Order{
		orderNo:              orderNo,
		userID:               userID,
		packageConfigID:      &pkgID,
		packageName:          pkg.Name(),
		packageType:          vo.PackageTypeBasic,
		packageDescription:   pkg.Description(),
		packageOriginalPrice: pkg.OriginalPrice(),
		packageCurrentPrice:  pkg.CurrentPrice(),
		packageDuration:      pkg.DurationDays(),
		quantity:             1,
		totalAmount:          pkg.CurrentPrice(),
		paymentMethod:        method,
		orderStatus:          vo.OrderStatusPending,
		paymentStatus:        vo.PaymentStatusUnpaid,
		refundStatus:         vo.RefundStatusNone,
		orderSource:          DefaultOrderSource,
		orderType:            DefaultOrderType,
		metadata:             map[string]interface{}{},
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

// OrderReconstructParams carries every persisted field.
type OrderReconstructParams struct {
	ID                   string
	OrderNo              string
	UserID               string
	PackageConfigID      *string
	PackageName          string
	PackageType          vo.PackageType
	PackageDescription   string
	PackageOriginalPrice vo.Money
	PackageCurrentPrice  vo.Money
	PackageDuration      int
	Quantity             int
	TotalAmount          vo.Money
	DiscountAmount       vo.Money
	PaidAmount           vo.Money
	PaymentMethod        vo.PaymentMethod
	OrderStatus          vo.OrderStatus
	PaymentStatus        vo.PaymentStatus
	RefundStatus         vo.RefundStatus
	TransactionID        *string
	PrepayID             *string
	PayID                *string
	OrderSource          string
	OrderType            string
	PaidAt               *time.Time
	ExpiredAt            *time.Time
	RefundAmount         vo.Money
	RefundReason         *string
	RefundAt             *time.Time
	Remark               *string
	Metadata             map[string]interface{}
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func ReconstructOrder(p OrderReconstructParams) *Order {
	if p.Metadata == nil {
		p.Metadata = map[string]interface{}{}
	}
	return &Order{
		id:                   p.ID,
		orderNo:              p.OrderNo,
		userID:               p.UserID,
		packageConfigID:      p.PackageConfigID,
		packageName:          p.PackageName,
		packageType:          p.PackageType,
		packageDescription:   p.PackageDescription,
		packageOriginalPrice: p.PackageOriginalPrice,
		packageCurrentPrice:  p.PackageCurrentPrice,
		packageDuration:      p.PackageDuration,
		quantity:             p.Quantity,
		totalAmount:          p.TotalAmount,
		discountAmount:       p.DiscountAmount,
		paidAmount:           p.PaidAmount,
		paymentMethod:        p.PaymentMethod,
		orderStatus:          p.OrderStatus,
		paymentStatus:        p.PaymentStatus,
		refundStatus:         p.RefundStatus,
		transactionID:        p.TransactionID,
		prepayID:             p.PrepayID,
		payID:                p.PayID,
		orderSource:          p.OrderSource,
		orderType:            p.OrderType,
		paidAt:               p.PaidAt,
		expiredAt:            p.ExpiredAt,
		refundAmount:         p.RefundAmount,
		refundReason:         p.RefundReason,
		refundAt:             p.RefundAt,
		remark:               p.Remark,
		metadata:             p.Metadata,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}
}

// IsSettled reports whether money has been received. Settled orders are
// never sent back to the gateway.
func (o *Order) IsSettled() bool {
	return o.orderStatus.IsSettled() || o.paymentStatus == vo.PaymentStatusPaid
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID string) bool {
	return userID != "" && o.userID == userID
}

// AttachPrepay stores the gateway payload for a pending order. Calling it
// again replaces the payload.
func (o *Order) AttachPrepay(payload string, now time.Time) error {
	if o.orderStatus != vo.OrderStatusPending {
		return ErrOrderNotPending
	}
	o.prepayID = &payload
	o.updatedAt = now
	return nil
}

// MarkPaid applies a gateway settlement. It returns false and changes nothing
// when the order is already settled, so a paid order's paidAt and payId are
// never rewritten.
func (o *Order) MarkPaid(gatewayTxnID string, paidAt time.Time) bool {
	if o.IsSettled() {
		return false
	}

	o.orderStatus = vo.OrderStatusCompleted
	o.paymentStatus = vo.PaymentStatusPaid
	o.paidAmount = o.totalAmount.Sub(o.discountAmount)
	if gatewayTxnID != "" {
		o.payID = &gatewayTxnID
		o.transactionID = &gatewayTxnID
	}
	o.paidAt = &paidAt
	expires := paidAt.Add(time.Duration(o.packageDuration) * 24 * time.Hour)
	o.expiredAt = &expires
	o.updatedAt = paidAt
	return true
}

// RefundRequest is the input of RequestRefund. A nil Amount means the full
// paid amount.
type RefundRequest struct {
	RequesterID  string
	Reason       string
	CustomReason string
	Amount       *vo.Money
	Remark       string
}

// RequestRefund moves a completed, paid order into refund review. Checks run
// in a fixed order and each failure has its own error.
func (o *Order) RequestRefund(req RefundRequest, now time.Time) error {
	if !o.IsOwnedBy(req.RequesterID) {
		return ErrNotOrderOwner
	}
	if o.orderStatus != vo.OrderStatusCompleted {
		return ErrOrderNotCompleted
	}
	if o.paymentStatus != vo.PaymentStatusPaid {
		return ErrOrderNotPaid
	}
	if o.refundStatus != vo.RefundStatusNone {
		return ErrRefundAlreadyRequested
	}

	amount := o.paidAmount
	if req.Amount != nil {
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			return ErrInvalidRefundAmount
		}
		if req.Amount.GreaterThan(o.paidAmount) {
			return ErrRefundExceedsPaid
		}
		amount = *req.Amount
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == RefundReasonOther && strings.TrimSpace(req.CustomReason) != "" {
		reason = strings.TrimSpace(req.CustomReason)
	}

	o.refundStatus = vo.RefundStatusPending
	o.refundAmount = amount
	o.refundReason = &reason
	if remark := strings.TrimSpace(req.Remark); remark != "" {
		o.appendRemark(remark)
	}
	o.updatedAt = now
	return nil
}

func (o *Order) appendRemark(r string) {
	if o.remark == nil || *o.remark == "" {
		o.remark = &r
		return
	}
	merged := *o.remark + "\n" + r
	o.remark = &merged
}

// IsActiveAt reports whether the order grants an entitlement at now.
func (o *Order) IsActiveAt(now time.Time) bool {
	return o.orderStatus == vo.OrderStatusCompleted &&
		o.paymentStatus == vo.PaymentStatusPaid &&
		o.expiredAt != nil && o.expiredAt.After(now)
}

// RemainingDays is ceil((expiredAt-now)/24h), floored at 0.
func (o *Order) RemainingDays(now time.Time) int {
	if o.expiredAt == nil {
		return 0
	}
	left := o.expiredAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(float64(left) / float64(24*time.Hour)))
}

// AddRemark appends a line to the order remark.
func (o *Order) AddRemark(r string) {
	if r = strings.TrimSpace(r); r != "" {
		o.appendRemark(r)
	}
}

// SetMetadata records an extra key. Used by seeding.
func (o *Order) SetMetadata(key string, value interface{}) {
	o.metadata[key] = value
}

func (o *Order) ID() string                      { return o.id }
func (o *Order) OrderNo() string                 { return o.orderNo }
func (o *Order) UserID() string                  { return o.userID }
func (o *Order) PackageConfigID() *string        { return o.packageConfigID }
func (o *Order) PackageName() string             { return o.packageName }
func (o *Order) PackageType() vo.PackageType     { return o.packageType }
func (o *Order) PackageDescription() string      { return o.packageDescription }
func (o *Order) PackageOriginalPrice() vo.Money  { return o.packageOriginalPrice }
func (o *Order) PackageCurrentPrice() vo.Money   { return o.packageCurrentPrice }
func (o *Order) PackageDuration() int            { return o.packageDuration }
func (o *Order) Quantity() int                   { return o.quantity }
func (o *Order) TotalAmount() vo.Money           { return o.totalAmount }
func (o *Order) DiscountAmount() vo.Money        { return o.discountAmount }
func (o *Order) PaidAmount() vo.Money            { return o.paidAmount }
func (o *Order) PaymentMethod() vo.PaymentMethod { return o.paymentMethod }
func (o *Order) OrderStatus() vo.OrderStatus     { return o.orderStatus }
func (o *Order) PaymentStatus() vo.PaymentStatus { return o.paymentStatus }
func (o *Order) RefundStatus() vo.RefundStatus   { return o.refundStatus }
func (o *Order) TransactionID() *string          { return o.transactionID }
func (o *Order) PrepayID() *string               { return o.prepayID }
func (o *Order) PayID() *string                  { return o.payID }
func (o *Order) OrderSource() string             { return o.orderSource }
func (o *Order) OrderType() string               { return o.orderType }
func (o *Order) PaidAt() *time.Time              { return o.paidAt }
func (o *Order) ExpiredAt() *time.Time           { return o.expiredAt }
func (o *Order) RefundAmount() vo.Money          { return o.refundAmount }
func (o *Order) RefundReason() *string           { return o.refundReason }
func (o *Order) RefundAt() *time.Time            { return o.refundAt }
func (o *Order) Remark() *string                 { return o.remark }
func (o *Order) Metadata() map[string]interface{} {
	return o.metadata
}
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// SetID is used by the persistence layer after insert.
func (o *Order) SetID(id string) { o.id = id }
