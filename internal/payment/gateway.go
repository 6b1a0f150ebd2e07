// Package payment adapts the two external payment providers behind small
// interfaces so the order service can be exercised with fakes.
package payment

import "context"

// PaymentStatusPaid is the checkout session status that settles an order.
const PaymentStatusPaid = "paid"

type CheckoutLineItem struct {
	Name      string
	UnitPrice int64 // minor units
	Quantity  int64
}

type CheckoutRequest struct {
	Items      []CheckoutLineItem
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	PaymentIntent string
}

// CheckoutGateway is provider A: a hosted checkout session the buyer is redirected to.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// CheckoutWebhook verifies a provider A webhook delivery and returns the completed
// session it carries. ok is false for events that do not settle a session.
type CheckoutWebhook interface {
	ParseWebhook(payload []byte, signature string) (sess *CheckoutSession, ok bool, err error)
}

type ProviderOrder struct {
	ID       string
	Amount   int64 // minor units
	Currency string
	Receipt  string
}

// OrderGateway is provider B: an order created up front and paid from an in-browser widget.
type OrderGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*ProviderOrder, error)
	// KeyID is the public key the widget is initialised with.
	KeyID() string
}
