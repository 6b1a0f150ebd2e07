package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/logging"
	"storefront-service/internal/payment"
)

const (
	providerStripe   = "stripe"
	providerRazorpay = "razorpay"
)

// VerifyCheckout asks provider A for the session state and settles the order
// when the session is paid.
func (s *OrderService) VerifyCheckout(ctx context.Context, sessionID string) error {
	start := time.Now()
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.BadInput("Session id is required")
	}
	if s.providers.Checkout == nil {
		return domain.Upstream("Stripe is not configured", nil)
	}

	session, err := s.providers.Checkout.GetSession(ctx, sessionID)
	if err != nil {
		s.logStep(ctx, providerStripe, "verify", "upstream_error", start, err.Error())
		return domain.Upstream("Failed to retrieve checkout session", err)
	}
	if session.PaymentStatus != payment.PaymentStatusPaid {
		s.metrics.PaymentResult(providerStripe, "not_paid")
		s.logStep(ctx, providerStripe, "verify", "not_paid", start, "")
		return ErrPaymentNotCompleted
	}
	return s.settle(ctx, domain.MethodStripe, sessionID, session.PaymentIntent, start)
}

// VerifySignature checks the client-side signature of provider B and settles the
// order. A mismatch never touches the ledger.
func (s *OrderService) VerifySignature(ctx context.Context, orderID, paymentID, signature string) error {
	start := time.Now()
	if s.providers.Signer == nil || !s.providers.Signer.VerifyPayment(orderID, paymentID, signature) {
		s.metrics.PaymentResult(providerRazorpay, "rejected")
		s.logStep(ctx, providerRazorpay, "verify", "rejected", start, "signature mismatch for order "+orderID)
		return ErrInvalidSignature
	}
	return s.settle(ctx, domain.MethodRazorpay, orderID, paymentID, start)
}

// HandleStripeWebhook settles the order of a completed checkout session. Events
// that do not complete a paid session are acknowledged and ignored.
func (s *OrderService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	start := time.Now()
	if s.providers.Webhook == nil {
		return domain.Upstream("Stripe webhooks are not configured", nil)
	}
	session, ok, err := s.providers.Webhook.ParseWebhook(payload, signature)
	if err != nil {
		s.metrics.PaymentResult(providerStripe, "rejected")
		s.logStep(ctx, providerStripe, "webhook", "rejected", start, err.Error())
		return domain.Rejected("Invalid webhook signature")
	}
	if !ok || session.PaymentStatus != payment.PaymentStatusPaid {
		return nil
	}
	return s.ackWebhook(s.settle(ctx, domain.MethodStripe, session.ID, session.PaymentIntent, start))
}

type razorpayWebhook struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// HandleRazorpayWebhook verifies the body signature and settles the order named
// by an order.paid or payment.captured event.
func (s *OrderService) HandleRazorpayWebhook(ctx context.Context, body []byte, signature string) error {
	start := time.Now()
	if s.providers.Signer == nil || !s.providers.Signer.VerifyWebhook(body, signature) {
		s.metrics.PaymentResult(providerRazorpay, "rejected")
		s.logStep(ctx, providerRazorpay, "webhook", "rejected", start, "webhook signature mismatch")
		return domain.Rejected("Invalid webhook signature")
	}

	var evt razorpayWebhook
	if err := json.Unmarshal(body, &evt); err != nil {
		return domain.BadInput("Malformed webhook payload")
	}
	if evt.Event != "order.paid" && evt.Event != "payment.captured" {
		return nil
	}

	orderID := evt.Payload.Payment.Entity.OrderID
	if orderID == "" {
		orderID = evt.Payload.Order.Entity.ID
	}
	if orderID == "" {
		return domain.BadInput("Webhook carries no order id")
	}
	return s.ackWebhook(s.settle(ctx, domain.MethodRazorpay, orderID, evt.Payload.Payment.Entity.ID, start))
}

// ackWebhook keeps providers from retrying deliveries that can never succeed.
func (s *OrderService) ackWebhook(err error) error {
	switch domain.KindOf(err) {
	case domain.KindNotFound, domain.KindConflict:
		return nil
	}
	return err
}

// settle moves the order bound to ref to Paid. An order that is already Paid
// counts as success, so repeated verification is harmless.
func (s *OrderService) settle(ctx context.Context, method domain.PaymentMethod, ref, paymentRef string, start time.Time) error {
	provider := strings.ToLower(string(method))
	now := s.now()

	changed, err := s.repo.MarkPaid(ctx, method, ref, paymentRef, now)
	if err != nil {
		s.logStep(ctx, provider, "mark_paid", "error", start, err.Error())
		return domain.Internal("failed to settle order", err)
	}

	if !changed {
		o, err := s.repo.FindByProviderRef(ctx, method, ref)
		if err != nil {
			return domain.Internal("failed to load order", err)
		}
		if o == nil {
			s.metrics.PaymentResult(provider, "unknown_order")
			s.logStep(ctx, provider, "mark_paid", "not_found", start, "no order for "+ref)
			return ErrOrderNotFound
		}
		if o.Status != domain.StatusPaid {
			s.metrics.PaymentResult(provider, "conflict")
			return domain.Conflict(fmt.Sprintf("Order is %s", o.Status))
		}
		s.metrics.PaymentResult(provider, "already_paid")
		s.logOrder(ctx, o.ID, provider, "already_paid", start)
		return nil
	}

	s.metrics.PaymentResult(provider, "paid")
	orderID := ref
	if o, err := s.repo.FindByProviderRef(ctx, method, ref); err == nil && o != nil {
		orderID = o.ID
	}
	s.logOrder(ctx, orderID, provider, "paid", start)
	go s.publish(context.Background(), domain.EventOrderPaid, domain.OrderPaidEvent{
		OrderID:       orderID,
		PaymentMethod: method,
		ProviderRef:   ref,
		PaymentRef:    paymentRef,
		PaidAt:        now,
	})
	return nil
}

func (s *OrderService) logStep(ctx context.Context, provider, step, status string, start time.Time, msg string) {
	f := logging.FromContext(ctx)
	f.Provider = provider
	f.Step = step
	f.Status = status
	f.DurationMS = logging.Since(start)
	f.Message = msg
	logging.Log(f)
}

func (s *OrderService) logOrder(ctx context.Context, orderID, provider, status string, start time.Time) {
	f := logging.FromContext(ctx)
	f.OrderID = orderID
	f.Provider = provider
	f.Step = "mark_paid"
	f.Status = status
	f.DurationMS = logging.Since(start)
	logging.Log(f)
}
