package http

import (
	"encoding/json"

	"storefront-service/internal/domain"
)

type CartItemRequest struct {
	ProductID string `json:"productId"`
	// ID is the catalog id as the storefront cart sends it.
	ID       string `json:"_id"`
	Size     string `json:"size"`
	Quantity int64  `json:"quantity"`
}

func (r CartItemRequest) productID() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	return r.ID
}

type PlaceOrderRequest struct {
	Items     []CartItemRequest `json:"items"`
	CartItems []CartItemRequest `json:"cartItems"`
	Address   domain.Address    `json:"address"`
}

type VerifyStripeRequest struct {
	SessionID string `json:"sessionId"`
}

type VerifyRazorpayRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type UpdateStatusRequest struct {
	OrderID string             `json:"orderId" binding:"required"`
	Status  domain.OrderStatus `json:"status" binding:"required"`
}

type CreateMiniStoreRequest struct {
	Slug        string   `json:"slug"`
	DisplayName string   `json:"displayName"`
	Bio         string   `json:"bio"`
	AvatarURL   string   `json:"avatarUrl"`
	BannerURL   string   `json:"bannerUrl"`
	Products    []string `json:"products"`
}

type ListMiniStoresQuery struct {
	All   string `form:"all"`
	Limit string `form:"limit"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.Number     `json:"price"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Sizes       json.RawMessage `json:"sizes"`
	Images      []string        `json:"images"`
	Bestseller  json.RawMessage `json:"bestseller"`
}

type SingleProductRequest struct {
	ProductID string `json:"productId"`
}
