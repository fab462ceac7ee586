package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/application/bootstrap"
	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/domain/user"
	"github.com/buildingai/cozepkg/internal/infrastructure/config"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

const adminPassword = "admin-pass-123"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{}
	cfg.Database.Driver = sharedConfig.DriverSQLite
	cfg.Auth.Password.BcryptCost = 4
	cfg.Auth.JWT.Secret = "test-secret"
	cfg.Auth.JWT.AccessExpMinutes = 60
	cfg.Auth.JWT.Issuer = "cozepkg"
	cfg.Cache.Driver = sharedConfig.CacheDriverMemory
	cfg.Cache.TTLSeconds = 60
	cfg.RateLimit.RPS = 100
	cfg.RateLimit.Burst = 100
	cfg.Payment.Mock = true
	cfg.Metrics.Enabled = true
	cfg.Bootstrap.DataDir = t.TempDir()
	cfg.Bootstrap.AdminUsername = "admin"
	cfg.Bootstrap.AdminPassword = adminPassword

	r, err := NewRouter(context.Background(), db, cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(r.Shutdown)
	r.SetupRoutes()

	outcome, err := r.NewOrchestrator(false).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, bootstrap.OutcomeInstalled, outcome)
	return r
}

func serve(r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.GetEngine().ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *Router, username, password string) string {
	t.Helper()
	w := serve(r, http.MethodPost, "/consoleapi/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_PermissionDefinitionsFollowRoutes(t *testing.T) {
	r := newTestRouter(t)

	codes := make(map[string]bool)
	for _, d := range r.PermissionDefinitions() {
		codes[d.Code] = true
	}
	assert.True(t, codes[apppermission.CodePackageGetConfig])
	assert.True(t, codes[apppermission.CodePackageSetConfig])
	assert.True(t, codes[apppermission.CodeOrderRefund])
	assert.True(t, codes[apppermission.CodeMenuTree])
}

func TestRouter_ConsoleRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/consoleapi/coze-package-config", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminReadsConfig(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin", adminPassword)

	w := serve(r, http.MethodGet, "/consoleapi/coze-package-config", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(r, http.MethodGet, "/consoleapi/menu/tree", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_UserWithoutRoleIsForbidden(t *testing.T) {
	r := newTestRouter(t)

	u, err := user.NewUser("operator", "", "")
	require.NoError(t, err)
	require.NoError(t, u.SetPassword("operator-pass", r.hasher))
	require.NoError(t, r.repos.user.Create(context.Background(), u))

	token := login(t, r, "operator", "operator-pass")
	w := serve(r, http.MethodGet, "/consoleapi/coze-package-config", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	require.NoError(t, r.permissions.GrantAdmin(u.ID()))
	w = serve(r, http.MethodGet, "/consoleapi/coze-package-config", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_RefundRequiresOrderOwner(t *testing.T) {
	r := newTestRouter(t)
	ctx := context.Background()

	owner, err := user.NewUser("buyer", "", "")
	require.NoError(t, err)
	require.NoError(t, owner.SetPassword("buyer-pass", r.hasher))
	require.NoError(t, r.repos.user.Create(ctx, owner))
	require.NoError(t, r.permissions.GrantAdmin(owner.ID()))

	pkg, err := cozepackage.NewPackageConfig("Basic", 30, vo.NewMoney(9900), vo.NewMoney(7999), "")
	require.NoError(t, err)
	require.NoError(t, r.repos.packageConfig.Create(ctx, pkg))

	now := time.Now()
	order, err := cozepackage.NewOrder("COZE1700000000000", owner.ID(), pkg, vo.PaymentMethodWechat, now)
	require.NoError(t, err)
	order.MarkPaid("wx-1", now)
	require.NoError(t, r.repos.order.Create(ctx, order))

	body := map[string]string{"orderId": order.ID(), "reason": "no longer needed"}

	adminToken := login(t, r, "admin", adminPassword)
	w := serve(r, http.MethodPost, "/consoleapi/coze-package-order/refund", adminToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	ownerToken := login(t, r, "buyer", "buyer-pass")
	w = serve(r, http.MethodPost, "/consoleapi/coze-package-order/refund", ownerToken, body)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_WebCenterIsPublicButOrdersAreNot(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/coze-package/center", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(r, http.MethodPost, "/api/coze-package/order", "", map[string]string{"packageId": "1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_InstallIsNotRepeated(t *testing.T) {
	r := newTestRouter(t)

	outcome, err := r.NewOrchestrator(false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bootstrap.OutcomeUpToDate, outcome)
}
