package upgrades

import (
	"context"
	"fmt"

	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
)

// beta10 introduces package orders.
type beta10 struct {
	d Deps
}

var beta10Permissions = []string{
	apppermission.CodeOrderList,
	apppermission.CodeOrderDetail,
	apppermission.CodeOrderStatistics,
	apppermission.CodeOrderRefund,
	apppermission.CodeOrderExport,
}

var beta10Menus = []string{"coze-package-order", "order-management"}

func (s *beta10) Version() string { return "1.0.0-beta.10" }

func (s *beta10) Apply(ctx context.Context) error {
	if err := s.d.Tables.SyncTable(ctx, TableOrders); err != nil {
		return fmt.Errorf("failed to sync %s: %w", TableOrders, err)
	}
	if err := s.seedOrders(ctx); err != nil {
		return err
	}
	if err := ensurePermissions(ctx, s.d, apppermission.Definitions(beta10Permissions...)); err != nil {
		return err
	}
	return mergeMenus(ctx, s.d, s.Version(), "user")
}

// seedOrders creates one paid and one pending example order for the first
// user so the console has something to show.
func (s *beta10) seedOrders(ctx context.Context) error {
	n, err := s.d.Orders.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	if n > 0 {
		return nil
	}

	u, err := s.d.Users.First(ctx)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	pkgs, err := s.d.Packages.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}
	if u == nil || len(pkgs) == 0 {
		s.d.Logger.Infow("no user or package yet, skipping example orders")
		return nil
	}

	now := s.d.Clock.Now()
	examples := []struct {
		method vo.PaymentMethod
		paid   bool
		remark string
	}{
		{vo.PaymentMethodWechat, true, "Example order (paid)"},
		{vo.PaymentMethodAlipay, false, "Example order (pending)"},
	}
	for _, ex := range examples {
		order, err := cozepackage.NewOrder(s.d.OrderNumbers.Generate("ORD"), u.ID(), pkgs[0], ex.method, now)
		if err != nil {
			return err
		}
		if ex.paid {
			order.MarkPaid("TXN"+order.OrderNo(), now)
		}
		order.AddRemark(ex.remark)
		order.SetMetadata("source", "system_init")
		order.SetMetadata("version", s.Version())
		if err := s.d.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create example order: %w", err)
		}
	}
	s.d.Logger.Infow("example orders created", "user_id", u.ID(), "count", len(examples))
	return nil
}

func (s *beta10) Rollback(ctx context.Context) error {
	if err := s.d.Menus.Remove(ctx, beta10Menus...); err != nil {
		return err
	}
	if err := s.d.Permissions.Remove(ctx, beta10Permissions); err != nil {
		return fmt.Errorf("failed to remove permissions: %w", err)
	}
	if err := s.d.Tables.DropTable(ctx, TableOrders); err != nil {
		return fmt.Errorf("failed to drop %s: %w", TableOrders, err)
	}
	return s.d.Permissions.RebuildPolicies(ctx)
}
