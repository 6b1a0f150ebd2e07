package domain

import "time"

const (
	EventOrderCreated = "order.created"
	EventOrderPaid    = "order.paid"
)

type OrderCreatedEvent struct {
	OrderID       string        `json:"orderId"`
	UserID        string        `json:"userId"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type OrderPaidEvent struct {
	OrderID       string        `json:"orderId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	ProviderRef   string        `json:"providerRef"`
	PaymentRef    string        `json:"paymentRef,omitempty"`
	PaidAt        time.Time     `json:"paidAt"`
}
