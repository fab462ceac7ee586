package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	userusecases "github.com/buildingai/cozepkg/internal/application/user/usecases"
	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/interfaces/http/handlers/testutil"
	"github.com/buildingai/cozepkg/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	result *userusecases.LoginWithPasswordResult
	err    error
	cmd    userusecases.LoginWithPasswordCommand
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd userusecases.LoginWithPasswordCommand) (*userusecases.LoginWithPasswordResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetConfigUC struct {
	result *dto.PackageConfigDTO
	err    error
}

func (m *mockGetConfigUC) Execute(ctx context.Context) (*dto.PackageConfigDTO, error) {
	return m.result, m.err
}

type mockSetConfigUC struct {
	result *dto.PackageConfigDTO
	err    error
	req    dto.SetPackageConfigRequest
}

func (m *mockSetConfigUC) Execute(ctx context.Context, req dto.SetPackageConfigRequest) (*dto.PackageConfigDTO, error) {
	m.req = req
	return m.result, m.err
}

type mockListOrdersUC struct {
	result *usecases.ListOrdersResult
	err    error
	req    dto.ListOrdersRequest
}

func (m *mockListOrdersUC) Execute(ctx context.Context, req dto.ListOrdersRequest) (*usecases.ListOrdersResult, error) {
	m.req = req
	return m.result, m.err
}

type mockGetOrderUC struct {
	result *dto.OrderDTO
	err    error
	arg    string
}

func (m *mockGetOrderUC) Execute(ctx context.Context, idOrOrderNo string) (*dto.OrderDTO, error) {
	m.arg = idOrOrderNo
	return m.result, m.err
}

type mockStatisticsUC struct {
	result *dto.StatisticsDTO
}

func (m *mockStatisticsUC) Execute(ctx context.Context) *dto.StatisticsDTO {
	return m.result
}

type mockRefundUC struct {
	result *dto.RefundResultDTO
	err    error
	cmd    usecases.RequestRefundCommand
}

func (m *mockRefundUC) Execute(ctx context.Context, cmd usecases.RequestRefundCommand) (*dto.RefundResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockCenterUC struct {
	result *dto.PackageCenterDTO
	userID string
}

func (m *mockCenterUC) Execute(ctx context.Context, userID string) (*dto.PackageCenterDTO, error) {
	m.userID = userID
	return m.result, nil
}

type mockCreateOrderUC struct {
	result *dto.OrderCreatedDTO
	err    error
	cmd    usecases.CreateOrderCommand
}

func (m *mockCreateOrderUC) Execute(ctx context.Context, cmd usecases.CreateOrderCommand) (*dto.OrderCreatedDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockPrepayUC struct {
	result *dto.PrepayDTO
	err    error
}

func (m *mockPrepayUC) Execute(ctx context.Context, cmd usecases.PrepayOrderCommand) (*dto.PrepayDTO, error) {
	return m.result, m.err
}

type mockQueryPayUC struct {
	result *dto.PayResultDTO
	err    error
	cmd    usecases.QueryPayResultCommand
}

func (m *mockQueryPayUC) Execute(ctx context.Context, cmd usecases.QueryPayResultCommand) (*dto.PayResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockActiveUC struct {
	result    *dto.ActivePackageDTO
	hasActive bool
	days      int
}

func (m *mockActiveUC) Execute(ctx context.Context, userID string) (*dto.ActivePackageDTO, error) {
	return m.result, nil
}

func (m *mockActiveUC) HasActivePackage(ctx context.Context, userID string) bool { return m.hasActive }
func (m *mockActiveUC) RemainingDays(ctx context.Context, userID string) int     { return m.days }

type mockNotifyUC struct {
	err error
}

func (m *mockNotifyUC) Execute(ctx context.Context, req *http.Request) error { return m.err }

type stubMenus struct {
	menus []*menu.Menu
	err   error
}

func (s *stubMenus) ListAll(ctx context.Context) ([]*menu.Menu, error) { return s.menus, s.err }

func newCenterHandler() (*PackageCenterHandler, *mockCenterUC, *mockCreateOrderUC, *mockPrepayUC, *mockQueryPayUC, *mockActiveUC) {
	center := &mockCenterUC{result: &dto.PackageCenterDTO{}}
	create := &mockCreateOrderUC{}
	prepay := &mockPrepayUC{}
	query := &mockQueryPayUC{}
	active := &mockActiveUC{}
	h := NewPackageCenterHandler(center, create, prepay, query, active, testutil.NewMockLogger())
	return h, center, create, prepay, query, active
}

// =====================================================================
// AuthHandler
// =====================================================================

func TestAuthHandler_Login_Success(t *testing.T) {
	uc := &mockLoginUC{result: &userusecases.LoginWithPasswordResult{AccessToken: "tok", ExpiresIn: 3600}}
	h := NewAuthHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/auth/login", LoginRequest{Username: "admin", Password: "secret"})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "tok", data.AccessToken)
	assert.Equal(t, int64(3600), data.ExpiresIn)
	assert.Equal(t, "admin", uc.cmd.Username)
}

func TestAuthHandler_Login_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad credentials", errors.NewUnauthorizedError("invalid username or password"), http.StatusUnauthorized},
		{"disabled", errors.NewForbiddenError("account disabled"), http.StatusForbidden},
		{"store failure", stderrors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockLoginUC{err: tt.err}, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/auth/login", LoginRequest{Username: "a", Password: "b"})
			h.Login(c)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockLoginUC{}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/auth/login", map[string]string{"username": "admin"})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
}

// =====================================================================
// PackageConfigHandler
// =====================================================================

func TestPackageConfigHandler_SetConfig(t *testing.T) {
	setUC := &mockSetConfigUC{result: &dto.PackageConfigDTO{CozePackageStatus: true}}
	h := NewPackageConfigHandler(&mockGetConfigUC{}, setUC, testutil.NewMockLogger())

	body := map[string]any{
		"cozePackageStatus":  true,
		"cozePackageExplain": "# Plans",
		"cozePackageRule": []map[string]any{
			{"name": "Monthly", "duration": 30, "originalPrice": 99.99, "currentPrice": 79.99},
		},
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/coze-package-config", body)
	h.SetConfig(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, setUC.req.CozePackageRule, 1)
	assert.Equal(t, 79.99, setUC.req.CozePackageRule[0].CurrentPrice)
}

func TestPackageConfigHandler_SetConfig_Conflict(t *testing.T) {
	setUC := &mockSetConfigUC{err: errors.NewConflictError("duplicate package name", "Monthly")}
	h := NewPackageConfigHandler(&mockGetConfigUC{}, setUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/coze-package-config", map[string]any{"cozePackageRule": []any{}})
	h.SetConfig(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPackageConfigHandler_GetConfig_Error(t *testing.T) {
	h := NewPackageConfigHandler(&mockGetConfigUC{err: stderrors.New("boom")}, &mockSetConfigUC{}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/coze-package-config", nil)
	h.GetConfig(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.NotContains(t, resp.Error.Message, "boom")
}

// =====================================================================
// OrderHandler
// =====================================================================

func TestOrderHandler_ListOrders(t *testing.T) {
	listUC := &mockListOrdersUC{result: &usecases.ListOrdersResult{
		Items:    []*dto.OrderDTO{{ID: "o1", OrderNo: "COZE1"}},
		Total:      21,
		Page:       2,
		PageSize:   10,
		TotalPages: 3,
		Statistics: &dto.StatisticsDTO{TotalOrder: 21, TotalIncome: 1200.5},
	}}
	h := NewOrderHandler(listUC, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/coze-package-order", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "2", "limit": "10", "sortBy": "actualAmount"})
	h.ListOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "actualAmount", listUC.req.SortBy)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var page struct {
		Items      []dto.OrderDTO     `json:"items"`
		Total      int64              `json:"total"`
		TotalPages int                `json:"totalPages"`
		Statistics *dto.StatisticsDTO `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(21), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "COZE1", page.Items[0].OrderNo)
	require.NotNil(t, page.Statistics)
	assert.Equal(t, int64(21), page.Statistics.TotalOrder)
	assert.Equal(t, 1200.5, page.Statistics.TotalIncome)
}

func TestOrderHandler_ListOrders_InvalidStatus(t *testing.T) {
	h := NewOrderHandler(&mockListOrdersUC{}, nil, nil, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/coze-package-order", nil)
	testutil.SetQueryParams(c, map[string]string{"orderStatus": "bogus"})
	h.ListOrders(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	getUC := &mockGetOrderUC{result: &dto.OrderDTO{ID: "o1"}}
	h := NewOrderHandler(nil, getUC, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/coze-package-order/COZE1", nil)
	testutil.SetURLParam(c, "id", "COZE1")
	h.GetOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COZE1", getUC.arg)
}

func TestOrderHandler_GetOrder_NotFound(t *testing.T) {
	h := NewOrderHandler(nil, &mockGetOrderUC{err: errors.NewNotFoundError("order not found")}, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/coze-package-order/x", nil)
	testutil.SetURLParam(c, "id", "x")
	h.GetOrder(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_GetStatistics(t *testing.T) {
	stats := &mockStatisticsUC{result: &dto.StatisticsDTO{TotalAmount: 1200, TotalRefundAmount: 300, TotalIncome: 900}}
	h := NewOrderHandler(nil, nil, stats, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/coze-package-order/statistics", nil)
	h.GetStatistics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data dto.StatisticsDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 900.0, data.TotalIncome)
}

func TestOrderHandler_RequestRefund(t *testing.T) {
	refundUC := &mockRefundUC{result: &dto.RefundResultDTO{OrderID: "o1", RefundStatus: "pending", Message: "refund requested"}}
	h := NewOrderHandler(nil, nil, nil, refundUC, testutil.NewMockLogger())

	amount := 10.5
	c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/coze-package-order/refund", dto.RefundRequest{
		OrderID:      "o1",
		Reason:       "other",
		CustomReason: "changed my mind",
		RefundAmount: &amount,
	})
	testutil.SetAuthContext(c, "admin-1")
	h.RequestRefund(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", refundUC.cmd.RequesterID)
	require.NotNil(t, refundUC.cmd.RefundAmount)
	assert.Equal(t, 10.5, *refundUC.cmd.RefundAmount)
}

func TestOrderHandler_RequestRefund_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not completed", errors.NewConflictError("order is not refundable"), http.StatusConflict},
		{"amount too large", errors.NewValidationError("refund amount exceeds paid amount"), http.StatusBadRequest},
		{"missing order", errors.NewNotFoundError("order not found"), http.StatusNotFound},
		{"not the owner", errors.NewForbiddenError("order does not belong to requester"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(nil, nil, nil, &mockRefundUC{err: tt.err}, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/coze-package-order/refund", dto.RefundRequest{OrderID: "o1", Reason: "other"})
			testutil.SetAuthContext(c, "admin-1")
			h.RequestRefund(c)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOrderHandler_RequestRefund_Unauthenticated(t *testing.T) {
	h := NewOrderHandler(nil, nil, nil, &mockRefundUC{}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/consoleapi/coze-package-order/refund", dto.RefundRequest{OrderID: "o1", Reason: "x"})
	h.RequestRefund(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// MenuHandler
// =====================================================================

func TestMenuHandler_GetTree(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	parent := uint(1)
	code := "coze-package"
	menus := []*menu.Menu{
		menu.ReconstructMenu(menu.ReconstructParams{ID: 2, Name: "Orders", Path: "orders", ParentID: &parent, Sort: 2, CreatedAt: now, UpdatedAt: now}),
		menu.ReconstructMenu(menu.ReconstructParams{ID: 1, Code: &code, Name: "Coze", Path: "/coze", CreatedAt: now, UpdatedAt: now}),
	}
	h := NewMenuHandler(&stubMenus{menus: menus}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/consoleapi/menu/tree", nil)
	h.GetTree(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var tree []*MenuNodeResponse
	require.NoError(t, json.Unmarshal(resp.Data, &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "coze-package", tree[0].Code)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Orders", tree[0].Children[0].Name)
}

// =====================================================================
// PackageCenterHandler
// =====================================================================

func TestPackageCenterHandler_GetCenter_Anonymous(t *testing.T) {
	h, center, _, _, _, _ := newCenterHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/api/coze-package/center", nil)
	h.GetCenter(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, center.userID)
}

func TestPackageCenterHandler_GetCenter_SignedIn(t *testing.T) {
	h, center, _, _, _, _ := newCenterHandler()
	c, _ := testutil.NewTestContext(http.MethodGet, "/api/coze-package/center", nil)
	testutil.SetAuthContext(c, "u-1")
	h.GetCenter(c)

	assert.Equal(t, "u-1", center.userID)
}

func TestPackageCenterHandler_CreateOrder(t *testing.T) {
	h, _, create, _, _, _ := newCenterHandler()
	create.result = &dto.OrderCreatedDTO{OrderID: "o1", OrderNo: "COZE20250101000000123456"}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/coze-package/order", dto.CreateOrderRequest{PackageID: "p1", PaymentMethod: "wechat"})
	testutil.SetAuthContext(c, "u-1")
	h.CreateOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u-1", create.cmd.UserID)
	assert.Equal(t, "p1", create.cmd.PackageID)
}

func TestPackageCenterHandler_CreateOrder_BadMethod(t *testing.T) {
	h, _, _, _, _, _ := newCenterHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/coze-package/order", map[string]string{"packageId": "p1", "paymentMethod": "cash"})
	testutil.SetAuthContext(c, "u-1")
	h.CreateOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPackageCenterHandler_Prepay_Conflict(t *testing.T) {
	h, _, _, prepay, _, _ := newCenterHandler()
	prepay.err = errors.NewConflictError("order is not payable")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/coze-package/pay/prepay", dto.PrepayRequest{OrderID: "o1"})
	testutil.SetAuthContext(c, "u-1")
	h.Prepay(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPackageCenterHandler_QueryPayResult(t *testing.T) {
	h, _, _, _, query, _ := newCenterHandler()
	query.result = &dto.PayResultDTO{PayStatus: dto.PayStatusPaid}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/coze-package/pay/queryPayResult", nil)
	testutil.SetQueryParams(c, map[string]string{"orderNo": "COZE1", "from": "coze"})
	testutil.SetAuthContext(c, "u-1")
	h.QueryPayResult(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COZE1", query.cmd.OrderNo)
	assert.Equal(t, "u-1", query.cmd.UserID)
}

func TestPackageCenterHandler_QueryPayResult_NoIdentifier(t *testing.T) {
	h, _, _, _, _, _ := newCenterHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/api/coze-package/pay/queryPayResult", nil)
	testutil.SetAuthContext(c, "u-1")
	h.QueryPayResult(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPackageCenterHandler_UserEndpoints(t *testing.T) {
	h, _, _, _, _, active := newCenterHandler()
	active.hasActive = true
	active.days = 10

	c, w := testutil.NewTestContext(http.MethodGet, "/api/coze-package/user/remaining-days", nil)
	testutil.SetAuthContext(c, "u-1")
	h.GetRemainingDays(c)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var days dto.RemainingDaysDTO
	require.NoError(t, json.Unmarshal(resp.Data, &days))
	assert.Equal(t, 10, days.RemainingDays)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/coze-package/user/has-active-package", nil)
	testutil.SetAuthContext(c, "u-1")
	h.HasActivePackage(c)
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var has dto.HasActivePackageDTO
	require.NoError(t, json.Unmarshal(resp.Data, &has))
	assert.True(t, has.HasActivePackage)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/coze-package/user/current-package", nil)
	testutil.SetAuthContext(c, "u-1")
	h.GetCurrentPackage(c)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = testutil.APIResponse{}
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

// =====================================================================
// PaymentNotifyHandler
// =====================================================================

func TestPaymentNotifyHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"applied", nil, http.StatusOK, "SUCCESS"},
		{"bad signature", errors.NewUnauthorizedError("invalid payment notification"), http.StatusUnauthorized, "FAIL"},
		{"store failure", stderrors.New("db down"), http.StatusInternalServerError, "FAIL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPaymentNotifyHandler(&mockNotifyUC{err: tt.err}, testutil.NewMockLogger())
			c, w := testutil.NewRawContext(http.MethodPost, "/api/coze-package/pay/notify/wechat", "application/json", []byte(`{}`))
			h.WechatNotify(c)

			assert.Equal(t, tt.status, w.Code)
			var ack notifyAck
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
			assert.Equal(t, tt.code, ack.Code)
		})
	}
}

// =====================================================================
// HealthHandler
// =====================================================================

type stubPinger struct{ err error }

func (s stubPinger) PingContext(ctx context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{}, "1.0.0").HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{err: stderrors.New("down")}, "1.0.0").HealthCheck(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
