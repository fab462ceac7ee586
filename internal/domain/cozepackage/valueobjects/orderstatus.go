package valueobjects

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusExpired   OrderStatus = "expired"
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusExpired, OrderStatusCompleted:
		return true
	}
	return false
}

// IsSettled is true once money has been received for the order.
func (s OrderStatus) IsSettled() bool {
	return s == OrderStatusPaid || s == OrderStatusCompleted
}

func (s OrderStatus) String() string { return string(s) }

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partialRefund"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusPartialRefund:
		return true
	}
	return false
}

func (s PaymentStatus) String() string { return string(s) }

type RefundStatus string

const (
	RefundStatusNone       RefundStatus = "none"
	RefundStatusPending    RefundStatus = "pending"
	RefundStatusApproved   RefundStatus = "approved"
	RefundStatusRejected   RefundStatus = "rejected"
	RefundStatusProcessing RefundStatus = "processing"
)

func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundStatusNone, RefundStatusPending, RefundStatusApproved, RefundStatusRejected, RefundStatusProcessing:
		return true
	}
	return false
}

func (s RefundStatus) String() string { return string(s) }
