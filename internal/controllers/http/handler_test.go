package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/payment"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-test-secret"

type testDeps struct {
	orders   *mocks.MockOrderRepository
	stores   *mocks.MockMiniStoreRepository
	products *mocks.MockProductRepository
	users    *mocks.MockUserRepository
	router   *gin.Engine
	guard    *auth.Guard
}

func setupRouter(t *testing.T) *testDeps {
	return setupRouterWithLimiter(t, NewRateLimiter(1000, 1000))
}

func setupRouterWithLimiter(t *testing.T, limiter *RateLimiter) *testDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := &testDeps{
		orders:   new(mocks.MockOrderRepository),
		stores:   new(mocks.MockMiniStoreRepository),
		products: new(mocks.MockProductRepository),
		users:    new(mocks.MockUserRepository),
		guard:    auth.NewGuard(testSecret),
	}
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	orderSvc := services.NewOrderService(d.orders, d.products, d.users, services.Providers{
		Signer: payment.NewSigner("rzp_secret", "rzp_webhook"),
	}, pub, services.OrderSettings{Currency: "INR"})
	storeSvc := services.NewMiniStoreService(d.stores, d.products)
	userSvc := services.NewUserService(d.users, d.guard, services.AdminCredentials{Email: "admin@shop.example", Password: "admin-pass"})
	productSvc := services.NewProductService(d.products)

	h := NewHandler(orderSvc, storeSvc, userSvc, productSvc, d.guard, limiter)
	d.router = gin.New()
	h.RegisterRoutes(d.router)
	return d
}

func (d *testDeps) userToken(t *testing.T) string {
	tok, err := d.guard.IssueUser("user-1")
	require.NoError(t, err)
	return tok
}

func (d *testDeps) adminToken(t *testing.T) string {
	tok, err := d.guard.IssueAdmin()
	require.NoError(t, err)
	return tok
}

func (d *testDeps) do(method, path, token string, body any) *httptest.ResponseRecorder {
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
	d.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestVerifyRazorpay(t *testing.T) {
	tests := []struct {
		name           string
		token          func(*testDeps, *testing.T) string
		body           VerifyRazorpayRequest
		setupMocks     func(*testDeps)
		expectedStatus int
	}{
		{
			name:  "mismatched signature is rejected without touching the ledger",
			token: (*testDeps).userToken,
			body: VerifyRazorpayRequest{
				OrderID:   "order_1",
				PaymentID: "pay_1",
				Signature: payment.NewSigner("rzp_secret", "").PaymentSignature("order_1", "pay_2"),
			},
			setupMocks:     func(*testDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "valid signature",
			token: (*testDeps).userToken,
			body: VerifyRazorpayRequest{
				OrderID:   "order_1",
				PaymentID: "pay_1",
				Signature: payment.NewSigner("rzp_secret", "").PaymentSignature("order_1", "pay_1"),
			},
			setupMocks: func(d *testDeps) {
				d.orders.On("MarkPaid", mock.Anything, domain.MethodRazorpay, "order_1", "pay_1", mock.Anything).Return(true, nil)
				d.orders.On("FindByProviderRef", mock.Anything, domain.MethodRazorpay, "order_1").
					Return(&domain.Order{ID: "o1", Status: domain.StatusPaid}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no credential",
			token:          func(*testDeps, *testing.T) string { return "" },
			setupMocks:     func(*testDeps) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "admin token is not a user token",
			token:          (*testDeps).adminToken,
			setupMocks:     func(*testDeps) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRouter(t)
			tt.setupMocks(d)

			w := d.do(http.MethodPost, "/api/order/verifyRazorpay", tt.token(d, t), tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, body["success"])
			if tt.expectedStatus != http.StatusOK {
				d.orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			d.orders.AssertExpectations(t)
		})
	}
}

func TestListMiniStores(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{"all returns every active store", "?all=1", 0},
		{"default cap", "", 8},
		{"explicit limit", "?limit=3", 3},
		{"negative limit falls back to default", "?limit=-3", 8},
		{"garbage limit falls back to default", "?limit=abc", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRouter(t)
			d.stores.On("ListActive", mock.Anything, tt.expectedLimit).
				Return([]domain.MiniStore{{ID: "s1", Slug: "shop", IsActive: true}}, nil)

			w := d.do(http.MethodGet, "/api/ministores"+tt.query, "", nil)

			assert.Equal(t, http.StatusOK, w.Code)
			var stores []domain.MiniStore
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stores))
			assert.Len(t, stores, 1)
			d.stores.AssertExpectations(t)
		})
	}
}

func TestCreateMiniStore(t *testing.T) {
	t.Run("requires admin", func(t *testing.T) {
		d := setupRouter(t)

		assert.Equal(t, http.StatusUnauthorized, d.do(http.MethodPost, "/api/ministores", "", CreateMiniStoreRequest{DisplayName: "Shop"}).Code)
		assert.Equal(t, http.StatusUnauthorized, d.do(http.MethodPost, "/api/ministores", d.userToken(t), CreateMiniStoreRequest{DisplayName: "Shop"}).Code)
		d.stores.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		d := setupRouter(t)
		d.stores.On("ExistsSlug", mock.Anything, "my-cool-store").Return(false, nil)
		d.stores.On("Create", mock.Anything, mock.AnythingOfType("*domain.MiniStore")).Return(nil)

		w := d.do(http.MethodPost, "/api/ministores", d.adminToken(t), CreateMiniStoreRequest{DisplayName: "My  Cool Store!!"})

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "my-cool-store", body["slug"])
		assert.Equal(t, true, body["isActive"])
	})

	t.Run("missing display name", func(t *testing.T) {
		d := setupRouter(t)

		w := d.do(http.MethodPost, "/api/ministores", d.adminToken(t), CreateMiniStoreRequest{Slug: "shop"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "displayName is required", decode(t, w)["message"])
	})
}

func TestGetMiniStore_Reserved(t *testing.T) {
	d := setupRouter(t)

	w := d.do(http.MethodGet, "/api/ministores/admin", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	d.stores.AssertNotCalled(t, "FindActiveBySlug", mock.Anything, mock.Anything)
}

func TestToggleAndDeleteMiniStore(t *testing.T) {
	d := setupRouter(t)
	d.stores.On("Toggle", mock.Anything, "s1").Return(&domain.MiniStore{ID: "s1", IsActive: false}, nil)
	d.stores.On("Delete", mock.Anything, "missing").Return(false, nil)

	w := d.do(http.MethodPatch, "/api/ministores/s1/toggle", d.adminToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["isActive"])

	w = d.do(http.MethodDelete, "/api/ministores/missing", d.adminToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	d := setupRouter(t)
	d.orders.On("FindByID", mock.Anything, "o1").Return(&domain.Order{ID: "o1", Status: domain.StatusPaid}, nil)

	w := d.do(http.MethodPost, "/api/order/status", d.adminToken(t), UpdateStatusRequest{OrderID: "o1", Status: domain.StatusPending})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = d.do(http.MethodPost, "/api/order/status", d.userToken(t), UpdateStatusRequest{OrderID: "o1", Status: domain.StatusPaid})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserOrders_InternalErrorIsGeneric(t *testing.T) {
	d := setupRouter(t)
	d.orders.On("FindByUser", mock.Anything, "user-1").Return(nil, errors.New("mongo: socket closed"))

	w := d.do(http.MethodGet, "/api/order/mine", d.userToken(t), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["message"])
}

func TestAdminLogin(t *testing.T) {
	d := setupRouter(t)

	w := d.do(http.MethodPost, "/api/user/admin", "", LoginRequest{Email: "admin@shop.example", Password: "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	token, _ := decode(t, w)["token"].(string)
	id, err := d.guard.Authorize(token, auth.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, id.Admin)

	w = d.do(http.MethodPost, "/api/user/admin", "", LoginRequest{Email: "admin@shop.example", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRazorpayWebhook_BadSignature(t *testing.T) {
	d := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/order/webhook/razorpay", bytes.NewBufferString(`{"event":"order.paid"}`))
	req.Header.Set("X-Razorpay-Signature", "deadbeef")
	w := httptest.NewRecorder()

	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	d := setupRouter(t)
	assert.Equal(t, http.StatusOK, d.do(http.MethodGet, "/api/health", "", nil).Code)

	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, nil, nil, auth.NewGuard(testSecret), NewRateLimiter(1, 1))
	h.SetHealthCheck(func(context.Context) error { return errors.New("down") })
	r := gin.New()
	h.RegisterRoutes(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestID(t *testing.T) {
	d := setupRouter(t)

	w := d.do(http.MethodGet, "/api/health", "", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rl.Cleanup(0)
	assert.Empty(t, rl.visitors)
}

func TestLoginRoutesUseInjectedLimiter(t *testing.T) {
	d := setupRouterWithLimiter(t, NewRateLimiter(0.001, 1))
	creds := LoginRequest{Email: "admin@shop.example", Password: "admin-pass"}

	assert.Equal(t, http.StatusOK, d.do(http.MethodPost, "/api/user/admin", "", creds).Code)
	assert.Equal(t, http.StatusTooManyRequests, d.do(http.MethodPost, "/api/user/admin", "", creds).Code)
	// Unlimited routes share no bucket with the login routes.
	assert.Equal(t, http.StatusOK, d.do(http.MethodGet, "/api/health", "", nil).Code)
}
