package cozepackage

import (
	"context"
	"time"

	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
)

type PackageConfigRepository interface {
	Create(ctx context.Context, pkg *PackageConfig) error
	Update(ctx context.Context, pkg *PackageConfig) error
	GetByID(ctx context.Context, id string) (*PackageConfig, error)
	// ListAll returns every package ordered by creation time ascending.
	ListAll(ctx context.Context) ([]*PackageConfig, error)
	DeleteExcept(ctx context.Context, keepIDs []string) (int64, error)
	// ParkName moves a package to a placeholder name unique to its id.
	ParkName(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	// GetForUser scopes the lookup to userID when it is non-empty.
	GetForUser(ctx context.Context, id, orderNo, userID string) (*Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*OrderView, int64, error)
	GetView(ctx context.Context, idOrOrderNo string) (*OrderView, error)
	Statistics(ctx context.Context) (*Statistics, error)
	// FindActive returns the paid order with the latest expiry after now,
	// or nil when the user has none.
	FindActive(ctx context.Context, userID string, now time.Time) (*Order, error)
	Count(ctx context.Context) (int64, error)
}

// OrderFilter is the console search. Zero values mean "no constraint".
type OrderFilter struct {
	UserID        string
	OrderNo       string
	OrderStatus   vo.OrderStatus
	PaymentStatus vo.PaymentStatus
	RefundStatus  vo.RefundStatus
	PackageType   vo.PackageType
	PaymentMethod vo.PaymentMethod
	StartTime     *time.Time
	EndTime       *time.Time
	Keyword       string
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}

// UserSummary is the part of the purchasing user shown next to an order.
type UserSummary struct {
	ID       string
	Username string
	Nickname string
}

// OrderView is an order joined with its user.
type OrderView struct {
	Order *Order
	User  *UserSummary
}

type Statistics struct {
	TotalOrder        int64
	TotalAmount       vo.Money
	TotalRefundOrder  int64
	TotalRefundAmount vo.Money
}

// TotalIncome is total amount minus the amount of orders under refund.
func (s Statistics) TotalIncome() vo.Money {
	return s.TotalAmount.Sub(s.TotalRefundAmount)
}
