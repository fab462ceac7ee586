package usecases

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

var testNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) *biztime.FixedClock { return biztime.NewFixedClock(t) }

func daysBefore(t time.Time, n int) time.Time { return t.Add(-time.Duration(n) * 24 * time.Hour) }

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) CreatePayment(ctx context.Context, req paymentgateway.CreatePaymentRequest) (*paymentgateway.CreatePaymentResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*paymentgateway.CreatePaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) QueryPayment(ctx context.Context, orderNo string) (*paymentgateway.QueryResult, error) {
	args := m.Called(ctx, orderNo)
	if res := args.Get(0); res != nil {
		return res.(*paymentgateway.QueryResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyCallback(ctx context.Context, req *http.Request) (*paymentgateway.CallbackData, error) {
	args := m.Called(ctx, req)
	if data := args.Get(0); data != nil {
		return data.(*paymentgateway.CallbackData), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
	done chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 1)}
}

func (m *mockNotifier) NotifyRefundRequested(ctx context.Context, notice RefundNotice) error {
	args := m.Called(ctx, notice)
	m.done <- struct{}{}
	return args.Error(0)
}

func gatewaysWith(g paymentgateway.PaymentGateway) *paymentgateway.Registry {
	reg := paymentgateway.NewRegistry()
	reg.Register(string(vo.PaymentMethodWechat), g)
	return reg
}

// passthroughTx runs fn without a real transaction.
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type memPackageRepo struct {
	mu      sync.Mutex
	seq     int
	pkgs    map[string]*cozepackage.PackageConfig
	order   []string
	writes  int
	parked  []string
	listErr error
}

func newMemPackageRepo() *memPackageRepo {
	return &memPackageRepo{pkgs: make(map[string]*cozepackage.PackageConfig)}
}

func (r *memPackageRepo) seed(name string, days int, originalFen, currentFen int64) *cozepackage.PackageConfig {
	pkg, err := cozepackage.NewPackageConfig(name, days, vo.NewMoney(originalFen), vo.NewMoney(currentFen), name+" tier")
	if err != nil {
		panic(err)
	}
	_ = r.Create(context.Background(), pkg)
	r.writes = 0
	return pkg
}

func (r *memPackageRepo) Create(_ context.Context, pkg *cozepackage.PackageConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	pkg.SetID(fmt.Sprintf("pkg-%d", r.seq))
	r.pkgs[pkg.ID()] = pkg
	r.order = append(r.order, pkg.ID())
	r.writes++
	return nil
}

func (r *memPackageRepo) Update(_ context.Context, pkg *cozepackage.PackageConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pkgs[pkg.ID()] = pkg
	r.writes++
	return nil
}

func (r *memPackageRepo) GetByID(_ context.Context, id string) (*cozepackage.PackageConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pkg, ok := r.pkgs[id]; ok {
		return pkg, nil
	}
	return nil, cozepackage.ErrPackageNotFound
}

func (r *memPackageRepo) ListAll(context.Context) ([]*cozepackage.PackageConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*cozepackage.PackageConfig, 0, len(r.order))
	for _, id := range r.order {
		if pkg, ok := r.pkgs[id]; ok {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (r *memPackageRepo) DeleteExcept(_ context.Context, keep []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keepSet := make(map[string]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var n int64
	for id := range r.pkgs {
		if !keepSet[id] {
			delete(r.pkgs, id)
			n++
		}
	}
	if n > 0 {
		r.writes++
	}
	return n, nil
}

func (r *memPackageRepo) ParkName(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pkgs[id]; !ok {
		return cozepackage.ErrPackageNotFound
	}
	r.parked = append(r.parked, id)
	return nil
}

func (r *memPackageRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.pkgs)), nil
}

type memOrderRepo struct {
	mu       sync.Mutex
	seq      int
	orders   map[string]*cozepackage.Order
	updates  int
	createFn func(o *cozepackage.Order) error
	stats    *cozepackage.Statistics
	statsErr error
	activeFn func(userID string, now time.Time) (*cozepackage.Order, error)
	lastList cozepackage.OrderFilter
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*cozepackage.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, o *cozepackage.Order) error {
	if r.createFn != nil {
		if err := r.createFn(o); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderNo() == o.OrderNo() {
			return cozepackage.ErrDuplicateOrderNo
		}
	}
	r.seq++
	o.SetID(fmt.Sprintf("order-%d", r.seq))
	r.orders[o.ID()] = o
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, o *cozepackage.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID()] = o
	r.updates++
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*cozepackage.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, cozepackage.ErrOrderNotFound
}

func (r *memOrderRepo) GetByOrderNo(_ context.Context, orderNo string) (*cozepackage.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNo() == orderNo {
			return o, nil
		}
	}
	return nil, cozepackage.ErrOrderNotFound
}

func (r *memOrderRepo) GetForUser(ctx context.Context, id, orderNo, userID string) (*cozepackage.Order, error) {
	var (
		o   *cozepackage.Order
		err error
	)
	if id != "" {
		o, err = r.GetByID(ctx, id)
	} else {
		o, err = r.GetByOrderNo(ctx, orderNo)
	}
	if err != nil {
		return nil, err
	}
	if userID != "" && o.UserID() != userID {
		return nil, cozepackage.ErrOrderNotFound
	}
	return o, nil
}

func (r *memOrderRepo) List(_ context.Context, f cozepackage.OrderFilter) ([]*cozepackage.OrderView, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = f
	views := make([]*cozepackage.OrderView, 0, len(r.orders))
	for _, o := range r.orders {
		views = append(views, &cozepackage.OrderView{Order: o})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Order.OrderNo() < views[j].Order.OrderNo() })
	return views, int64(len(views)), nil
}

func (r *memOrderRepo) GetView(ctx context.Context, idOrOrderNo string) (*cozepackage.OrderView, error) {
	o, err := r.GetByID(ctx, idOrOrderNo)
	if err != nil {
		o, err = r.GetByOrderNo(ctx, idOrOrderNo)
	}
	if err != nil {
		return nil, err
	}
	return &cozepackage.OrderView{
		Order: o,
		User:  &cozepackage.UserSummary{ID: o.UserID(), Username: "alice"},
	}, nil
}

func (r *memOrderRepo) Statistics(context.Context) (*cozepackage.Statistics, error) {
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	return r.stats, nil
}

func (r *memOrderRepo) FindActive(_ context.Context, userID string, now time.Time) (*cozepackage.Order, error) {
	if r.activeFn != nil {
		return r.activeFn(userID, now)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *cozepackage.Order
	for _, o := range r.orders {
		if o.UserID() != userID || !o.IsActiveAt(now) {
			continue
		}
		if best == nil || o.ExpiredAt().After(*best.ExpiredAt()) {
			best = o
		}
	}
	return best, nil
}

func (r *memOrderRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

type memSettings struct {
	bools   map[string]bool
	strs    map[string]string
	readErr error
	writes  int
}

func newMemSettings() *memSettings {
	return &memSettings{bools: map[string]bool{}, strs: map[string]string{}}
}

func (s *memSettings) GetBool(_ context.Context, group, key string, def bool) (bool, error) {
	if s.readErr != nil {
		return def, s.readErr
	}
	if v, ok := s.bools[group+"/"+key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *memSettings) GetString(_ context.Context, group, key, def string) (string, error) {
	if s.readErr != nil {
		return def, s.readErr
	}
	if v, ok := s.strs[group+"/"+key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *memSettings) SetBool(_ context.Context, group, key string, v bool, _ string) error {
	s.bools[group+"/"+key] = v
	s.writes++
	return nil
}

func (s *memSettings) SetString(_ context.Context, group, key, v, _ string) error {
	s.strs[group+"/"+key] = v
	s.writes++
	return nil
}

type memCenterCache struct {
	snapshot    *dto.CenterSnapshot
	sets        int
	invalidated int
}

func (c *memCenterCache) Get(context.Context) (*dto.CenterSnapshot, bool) {
	return c.snapshot, c.snapshot != nil
}

func (c *memCenterCache) Set(_ context.Context, s *dto.CenterSnapshot) {
	c.snapshot = s
	c.sets++
}

func (c *memCenterCache) Invalidate(context.Context) {
	c.snapshot = nil
	c.invalidated++
}

type memPayRepo struct {
	channels []*payconfig.PayConfig
}

func (r *memPayRepo) Create(_ context.Context, p *payconfig.PayConfig) error {
	r.channels = append(r.channels, p)
	return nil
}

func (r *memPayRepo) ListEnabled(context.Context) ([]*payconfig.PayConfig, error) {
	return r.channels, nil
}

func (r *memPayRepo) Count(context.Context) (int64, error) {
	return int64(len(r.channels)), nil
}

type htmlRenderer struct{}

func (htmlRenderer) Render(src string) (string, error) { return "<p>" + src + "</p>", nil }

type countingRecorder struct {
	created, paid, refunds int
}

func (r *countingRecorder) OrderCreated(string)     { r.created++ }
func (r *countingRecorder) OrderPaid(string, int64) { r.paid++ }
func (r *countingRecorder) RefundRequested()        { r.refunds++ }

// paidOrder creates a settled order for userID in repo.
func paidOrder(repo *memOrderRepo, pkg *cozepackage.PackageConfig, userID string, paidAt time.Time) *cozepackage.Order {
	o, err := cozepackage.NewOrder(fmt.Sprintf("COZE%d%02d", paidAt.Unix(), len(repo.orders)), userID, pkg, vo.PaymentMethodWechat, paidAt)
	if err != nil {
		panic(err)
	}
	o.MarkPaid("wx-"+o.OrderNo(), paidAt)
	if err := repo.Create(context.Background(), o); err != nil {
		panic(err)
	}
	return o
}
