package payment

import (
	"context"
	"encoding/json"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// orderCreator is the part of the razorpay client used here.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type RazorpayGateway struct {
	orders orderCreator
	keyID  string
}

var _ OrderGateway = (*RazorpayGateway)(nil)

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	c := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{orders: c.Order, keyID: keyID}
}

func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateOrder asks Razorpay for an order. The SDK has no context support, so
// cancellation of ctx is only checked before the call.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*ProviderOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := g.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: %w", err)
	}
	return decodeRazorpayOrder(resp)
}

func decodeRazorpayOrder(resp map[string]interface{}) (*ProviderOrder, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("razorpay: encode response: %w", err)
	}
	var body struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("razorpay: decode order: %w", err)
	}
	if body.ID == "" {
		return nil, fmt.Errorf("razorpay: order response has no id")
	}
	return &ProviderOrder{ID: body.ID, Amount: body.Amount, Currency: body.Currency, Receipt: body.Receipt}, nil
}
