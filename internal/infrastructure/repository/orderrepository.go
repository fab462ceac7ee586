package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/mappers"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/db"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// orderViewRow is an order row joined with its buyer.
type orderViewRow struct {
	models.OrderModel `gorm:"embedded"`
	UserUsername      *string
	UserNickname      *string
}

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrderMapper
	logger logger.Interface
}

func NewOrderRepository(gdb *gorm.DB, logger logger.Interface) cozepackage.OrderRepository {
	return &OrderRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewOrderMapper(),
		logger: logger,
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *cozepackage.Order) error {
	model, err := r.mapper.ToModel(order)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", cozepackage.ErrDuplicateOrderNo, order.OrderNo())
		}
		r.logger.Errorw("failed to create order", "order_no", order.OrderNo(), "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.SetID(model.ID)
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *cozepackage.Order) error {
	model, err := r.mapper.ToModel(order)
	if err != nil {
		return err
	}
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{ID: order.ID()}).
		Select("*").
		Omit("id", "order_no", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update order", "order_no", order.OrderNo(), "error", result.Error)
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	return nil
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id string) (*cozepackage.Order, error) {
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *OrderRepositoryImpl) GetByOrderNo(ctx context.Context, orderNo string) (*cozepackage.Order, error) {
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Where("order_no = ?", orderNo))
}

func (r *OrderRepositoryImpl) GetForUser(ctx context.Context, id, orderNo, userID string) (*cozepackage.Order, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	switch {
	case id != "":
		tx = tx.Where("id = ?", id)
	case orderNo != "":
		tx = tx.Where("order_no = ?", orderNo)
	default:
		return nil, cozepackage.ErrOrderNotFound
	}
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	return r.first(ctx, tx)
}

func (r *OrderRepositoryImpl) first(ctx context.Context, tx *gorm.DB) (*cozepackage.Order, error) {
	var model models.OrderModel
	if err := tx.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cozepackage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *OrderRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(constants.TableOrders + " AS o").
		Joins("LEFT JOIN " + constants.TableUsers + " AS u ON u.id = o.user_id")
}

func (r *OrderRepositoryImpl) List(ctx context.Context, filter cozepackage.OrderFilter) ([]*cozepackage.OrderView, int64, error) {
	q := applyOrderFilter(r.joined(ctx), filter)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	if total == 0 {
		return []*cozepackage.OrderView{}, 0, nil
	}

	column, direction := cozepackage.SortClause(filter.SortBy, filter.SortOrder)
	var rows []*orderViewRow
	err := q.Select("o.*, u.username AS user_username, u.nickname AS user_nickname").
		Order("o." + column + " " + direction).
		Order("o.id " + direction).
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]*cozepackage.OrderView, 0, len(rows))
	for _, row := range rows {
		v, err := r.toView(row)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}

func applyOrderFilter(q *gorm.DB, f cozepackage.OrderFilter) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("o.user_id = ?", f.UserID)
	}
	if f.OrderNo != "" {
		q = q.Scopes(db.ContainsFold("o.order_no", f.OrderNo))
	}
	if f.OrderStatus != "" {
		q = q.Where("o.order_status = ?", string(f.OrderStatus))
	}
	if f.PaymentStatus != "" {
		q = q.Where("o.payment_status = ?", string(f.PaymentStatus))
	}
	if f.RefundStatus != "" {
		q = q.Where("o.refund_status = ?", string(f.RefundStatus))
	}
	if f.PackageType != "" {
		q = q.Where("o.package_type = ?", string(f.PackageType))
	}
	if f.PaymentMethod != "" {
		q = q.Where("o.payment_method = ?", string(f.PaymentMethod))
	}
	if f.StartTime != nil {
		q = q.Where("o.created_at >= ?", *f.StartTime)
	}
	if f.EndTime != nil {
		q = q.Where("o.created_at <= ?", *f.EndTime)
	}
	if f.Keyword != "" {
		like := db.ContainsPattern(f.Keyword)
		q = q.Where("(LOWER(o.order_no) LIKE ? "+db.LikeEscape+" OR LOWER(u.username) LIKE ? "+db.LikeEscape+" OR LOWER(o.package_name) LIKE ? "+db.LikeEscape+")", like, like, like)
	}
	return q
}

// GetView resolves idOrOrderNo as an order ID first and as an order number
// second.
func (r *OrderRepositoryImpl) GetView(ctx context.Context, idOrOrderNo string) (*cozepackage.OrderView, error) {
	for _, column := range []string{"o.id", "o.order_no"} {
		var row orderViewRow
		err := r.joined(ctx).
			Select("o.*, u.username AS user_username, u.nickname AS user_nickname").
			Where(column+" = ?", idOrOrderNo).
			Limit(1).
			Scan(&row).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get order: %w", err)
		}
		if row.ID != "" {
			return r.toView(&row)
		}
	}
	return nil, cozepackage.ErrOrderNotFound
}

func (r *OrderRepositoryImpl) toView(row *orderViewRow) (*cozepackage.OrderView, error) {
	order, err := r.mapper.ToDomain(&row.OrderModel)
	if err != nil {
		return nil, err
	}
	view := &cozepackage.OrderView{Order: order}
	if row.UserUsername != nil {
		view.User = &cozepackage.UserSummary{ID: row.UserID, Username: *row.UserUsername}
		if row.UserNickname != nil {
			view.User.Nickname = *row.UserNickname
		}
	}
	return view, nil
}

type orderTotals struct {
	Orders int64
	Amount int64
}

func (r *OrderRepositoryImpl) Statistics(ctx context.Context) (*cozepackage.Statistics, error) {
	var all, refunds orderTotals
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OrderModel{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS amount").
		Scan(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to sum orders: %w", err)
	}
	if err := tx.Model(&models.OrderModel{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS amount").
		Where("refund_status <> ?", string(vo.RefundStatusNone)).
		Scan(&refunds).Error; err != nil {
		return nil, fmt.Errorf("failed to sum refunds: %w", err)
	}
	return &cozepackage.Statistics{
		TotalOrder:        all.Orders,
		TotalAmount:       vo.NewMoney(all.Amount),
		TotalRefundOrder:  refunds.Orders,
		TotalRefundAmount: vo.NewMoney(refunds.Amount),
	}, nil
}

func (r *OrderRepositoryImpl) FindActive(ctx context.Context, userID string, now time.Time) (*cozepackage.Order, error) {
	var model models.OrderModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND order_status = ? AND payment_status = ? AND expired_at > ?",
			userID, string(vo.OrderStatusCompleted), string(vo.PaymentStatusPaid), now).
		Order("expired_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active order: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *OrderRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.OrderModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}
