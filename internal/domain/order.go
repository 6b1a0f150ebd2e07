package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusInitiated OrderStatus = "Initiated"
	StatusPaid      OrderStatus = "Paid"
	StatusFailed    OrderStatus = "Failed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInitiated, StatusPaid, StatusFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCOD      PaymentMethod = "COD"
	MethodStripe   PaymentMethod = "Stripe"
	MethodRazorpay PaymentMethod = "Razorpay"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCOD, MethodStripe, MethodRazorpay:
		return true
	}
	return false
}

// Online reports whether the method settles through a payment provider.
func (m PaymentMethod) Online() bool {
	return m == MethodStripe || m == MethodRazorpay
}

// transitions lists the statuses reachable from each status. Paid and Failed are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPaid, StatusFailed},
	StatusInitiated: {StatusPaid, StatusFailed},
}

// CanTransition reports whether an order may move from one status to another.
// Staying in the same status is not a transition.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SourcesOf returns every status from which to is reachable, to itself included,
// so a conditional update on the result is idempotent.
func SourcesOf(to OrderStatus) []OrderStatus {
	out := []OrderStatus{to}
	for from := range transitions {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Items         []LineItem    `json:"items"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	ProviderRef   string        `json:"providerRef,omitempty"`
	PaymentRef    string        `json:"paymentRef,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}

// OrderView is an order with the owner's email attached, as shown to admins.
type OrderView struct {
	Order
	UserEmail string `json:"userEmail,omitempty"`
}
