package services

import (
	"time"

	"storefront-service/internal/domain"
)

func CreateMockOrder(id string, method domain.PaymentMethod, ref string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            id,
		UserID:        TestUserID,
		Amount:        TestProductPrice + TestDeliveryFee,
		Currency:      "INR",
		PaymentMethod: method,
		Status:        status,
		ProviderRef:   ref,
		CreatedAt:     time.Now(),
	}
}

func CreateMockProduct(id, name string, price int64, sizes ...string) *domain.Product {
	return &domain.Product{
		ID:     id,
		Name:   name,
		Price:  price,
		Sizes:  sizes,
		Images: []string{},
	}
}

const (
	TestUserID       = "user-1"
	TestOrderID      = "order-1"
	TestProductID    = "prod-1"
	TestProductName  = "Test Product"
	TestProductPrice = int64(49900)
	TestDeliveryFee  = int64(1000)
	TestKeySecret    = "rzp_secret"
	TestWebhookKey   = "rzp_webhook_secret"
)

var TestNow = time.Date(2024, 11, 14, 22, 13, 20, 123_000_000, time.UTC)
