package http

import (
	"context"
	"net/http"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/metrics"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether the backing stores are reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	orders   *services.OrderService
	stores   *services.MiniStoreService
	users    *services.UserService
	products *services.ProductService
	guard    *auth.Guard
	metrics  *metrics.ServerMetrics
	health   HealthCheck
	limiter  *RateLimiter
}

func NewHandler(
	orders *services.OrderService,
	stores *services.MiniStoreService,
	users *services.UserService,
	products *services.ProductService,
	guard *auth.Guard,
	limiter *RateLimiter,
) *Handler {
	return &Handler{
		orders:   orders,
		stores:   stores,
		users:    users,
		products: products,
		guard:    guard,
		limiter:  limiter,
	}
}

func (h *Handler) SetMetrics(m *metrics.ServerMetrics) {
	h.metrics = m
}

func (h *Handler) SetHealthCheck(check HealthCheck) {
	h.health = check
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID())
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	user := h.guard.Require(auth.RoleUser)
	admin := h.guard.Require(auth.RoleAdmin)
	limited := h.limiter.Middleware()

	api := r.Group("/api")
	api.GET("/health", h.Health)

	order := api.Group("/order")
	order.POST("/place", user, h.PlaceOrder)
	order.POST("/stripe", user, h.PlaceOrderStripe)
	order.POST("/razorpay", user, h.PlaceOrderRazorpay)
	order.POST("/verifyStripe", limited, user, h.VerifyStripe)
	order.POST("/verifyRazorpay", limited, user, h.VerifyRazorpay)
	order.POST("/list", admin, h.AllOrders)
	order.GET("/list", admin, h.AllOrders)
	order.POST("/userorders", user, h.UserOrders)
	order.GET("/mine", user, h.UserOrders)
	order.POST("/status", admin, h.UpdateStatus)
	order.POST("/webhook/stripe", h.StripeWebhook)
	order.POST("/webhook/razorpay", h.RazorpayWebhook)

	stores := api.Group("/ministores")
	stores.POST("", admin, h.CreateMiniStore)
	stores.GET("", h.ListMiniStores)
	stores.GET("/:slug", h.GetMiniStore)
	stores.PATCH("/:id/toggle", admin, h.ToggleMiniStore)
	stores.DELETE("/:id", admin, h.DeleteMiniStore)

	users := api.Group("/user")
	users.POST("/register", limited, h.Register)
	users.POST("/login", limited, h.Login)
	users.POST("/admin", limited, h.AdminLogin)

	products := api.Group("/product")
	products.POST("/add", admin, h.AddProduct)
	products.GET("/list", h.ListProducts)
	products.POST("/single", h.SingleProduct)
}

func (h *Handler) Health(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "time": now})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "time": now})
}
