package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

var (
	_ CheckoutGateway = (*StripeGateway)(nil)
	_ CheckoutWebhook = (*StripeGateway)(nil)
)

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	return &StripeGateway{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	currency := strings.ToLower(req.Currency)
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitPrice),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          items,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, stripeError(err)
	}
	return toCheckoutSession(s), nil
}

func (g *StripeGateway) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, stripeError(err)
	}
	return toCheckoutSession(s), nil
}

// ParseWebhook verifies the Stripe-Signature header and returns the completed
// checkout session carried by the event. ok is false for other event types.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (sess *CheckoutSession, ok bool, err error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, false, err
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil, false, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, false, fmt.Errorf("decode checkout session: %w", err)
	}
	return toCheckoutSession(&s), true, nil
}

func toCheckoutSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntent = s.PaymentIntent.ID
	}
	return out
}

func stripeError(err error) error {
	if se, ok := err.(*stripe.Error); ok && se.Msg != "" {
		return fmt.Errorf("stripe: %s", se.Msg)
	}
	return fmt.Errorf("stripe: %w", err)
}
