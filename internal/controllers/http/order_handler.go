package http

import (
	"net/http"

	"storefront-service/internal/auth"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) orderInput(c *gin.Context) (services.OrderInput, bool) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return services.OrderInput{}, false
	}
	id, _ := auth.IdentityFrom(c)

	items := req.Items
	if len(items) == 0 {
		items = req.CartItems
	}
	in := services.OrderInput{UserID: id.UserID, Address: req.Address}
	for _, it := range items {
		in.Items = append(in.Items, services.ItemInput{ProductID: it.productID(), Size: it.Size, Quantity: it.Quantity})
	}
	return in, true
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	in, ok := h.orderInput(c)
	if !ok {
		return
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) PlaceOrderStripe(c *gin.Context) {
	in, ok := h.orderInput(c)
	if !ok {
		return
	}
	url, err := h.orders.CreateCheckoutSession(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func (h *Handler) PlaceOrderRazorpay(c *gin.Context) {
	in, ok := h.orderInput(c)
	if !ok {
		return
	}
	res, err := h.orders.CreateProviderOrder(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"orderId":  res.OrderID,
		"amount":   res.Amount,
		"currency": res.Currency,
		"key":      res.Key,
	})
}

func (h *Handler) VerifyStripe(c *gin.Context) {
	var req VerifyStripeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.orders.VerifyCheckout(c.Request.Context(), req.SessionID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}

func (h *Handler) VerifyRazorpay(c *gin.Context) {
	var req VerifyRazorpayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.orders.VerifySignature(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}

func (h *Handler) AllOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) UserOrders(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)
	orders, err := h.orders.ListMine(c.Request.Context(), id.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "orderId and status are required")
		return
	}
	if _, err := h.orders.UpdateStatus(c.Request.Context(), req.OrderID, req.Status); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Unreadable body")
		return
	}
	if err := h.orders.HandleStripeWebhook(c.Request.Context(), body, c.GetHeader("Stripe-Signature")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *Handler) RazorpayWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Unreadable body")
		return
	}
	if err := h.orders.HandleRazorpayWebhook(c.Request.Context(), body, c.GetHeader("X-Razorpay-Signature")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
