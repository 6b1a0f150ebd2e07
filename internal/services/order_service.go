package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/metrics"
	"storefront-service/internal/payment"
	"storefront-service/internal/repository"

	"golang.org/x/sync/errgroup"
)

// catalogConcurrency bounds parallel product lookups for one cart.
const catalogConcurrency = 8

// MaxQuantity caps a single cart line.
const MaxQuantity = 1000

var errTotalTooLarge = domain.BadInput("Order total is too large")

type ItemInput struct {
	ProductID string
	Size      string
	Quantity  int64
}

type OrderInput struct {
	UserID  string
	Items   []ItemInput
	Address domain.Address
}

type ProviderOrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type OrderSettings struct {
	Currency    string
	BaseURL     string
	DeliveryFee int64 // minor units
}

type Providers struct {
	Checkout payment.CheckoutGateway
	Webhook  payment.CheckoutWebhook
	Orders   payment.OrderGateway
	Signer   *payment.Signer
}

type OrderService struct {
	repo      repository.OrderRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	providers Providers
	publisher rabbit.PublisherInterface
	metrics   *metrics.ServerMetrics
	settings  OrderSettings
	now       func() time.Time
}

func NewOrderService(
	r repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	providers Providers,
	pub rabbit.PublisherInterface,
	settings OrderSettings,
) *OrderService {
	if settings.Currency == "" {
		settings.Currency = "INR"
	}
	if pub == nil {
		pub = rabbit.NoopPublisher{}
	}
	return &OrderService{
		repo:      r,
		products:  products,
		users:     users,
		providers: providers,
		publisher: pub,
		settings:  settings,
		now:       time.Now,
	}
}

func (s *OrderService) SetMetrics(m *metrics.ServerMetrics) {
	s.metrics = m
}

// PlaceOrder records a cash-on-delivery order. It stays Pending until an admin moves it.
func (s *OrderService) PlaceOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	order, err := s.newOrder(ctx, in, domain.MethodCOD)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateCheckoutSession opens a hosted checkout session and records the order as
// Initiated under the session id. Returns the URL the buyer is redirected to.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, in OrderInput) (string, error) {
	if s.providers.Checkout == nil {
		return "", domain.Upstream("Stripe is not configured", nil)
	}
	order, err := s.newOrder(ctx, in, domain.MethodStripe)
	if err != nil {
		return "", err
	}

	req := payment.CheckoutRequest{
		Currency:   order.Currency,
		SuccessURL: s.settings.BaseURL + "/verify?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.settings.BaseURL + "/cart",
		Metadata:   map[string]string{"userId": in.UserID},
	}
	for _, it := range order.Items {
		req.Items = append(req.Items, payment.CheckoutLineItem{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	if s.settings.DeliveryFee > 0 {
		req.Items = append(req.Items, payment.CheckoutLineItem{Name: "Delivery Charges", UnitPrice: s.settings.DeliveryFee, Quantity: 1})
	}

	session, err := s.providers.Checkout.CreateSession(ctx, req)
	if err != nil {
		return "", domain.Upstream("Failed to create checkout session", err)
	}

	order.Status = domain.StatusInitiated
	order.ProviderRef = session.ID
	if err := s.save(ctx, order); err != nil {
		return "", err
	}
	return session.URL, nil
}

// CreateProviderOrder creates a provider B order for the cart total and records
// the local order as Initiated under the provider order id.
func (s *OrderService) CreateProviderOrder(ctx context.Context, in OrderInput) (*ProviderOrderResult, error) {
	if s.providers.Orders == nil {
		return nil, domain.Upstream("Razorpay is not configured", nil)
	}
	order, err := s.newOrder(ctx, in, domain.MethodRazorpay)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("rcpt_%d", s.now().UnixMilli())
	po, err := s.providers.Orders.CreateOrder(ctx, order.Amount, order.Currency, receipt)
	if err != nil {
		return nil, domain.Upstream("Failed to create payment order", err)
	}

	order.Status = domain.StatusInitiated
	order.ProviderRef = po.ID
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return &ProviderOrderResult{
		OrderID:  po.ID,
		Amount:   po.Amount,
		Currency: po.Currency,
		Key:      s.providers.Orders.KeyID(),
	}, nil
}

func (s *OrderService) newOrder(ctx context.Context, in OrderInput, method domain.PaymentMethod) (*domain.Order, error) {
	if in.UserID == "" {
		return nil, domain.Unauthorized("Not Authorized")
	}
	items, subtotal, err := s.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if subtotal > math.MaxInt64-s.settings.DeliveryFee {
		return nil, errTotalTooLarge
	}

	now := s.now()
	return &domain.Order{
		UserID:        in.UserID,
		Items:         items,
		Amount:        subtotal + s.settings.DeliveryFee,
		Currency:      s.settings.Currency,
		Address:       in.Address,
		PaymentMethod: method,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// resolveItems prices every cart line from the catalog. Lookups run concurrently.
func (s *OrderService) resolveItems(ctx context.Context, in []ItemInput) ([]domain.LineItem, int64, error) {
	if len(in) == 0 {
		return nil, 0, ErrEmptyCart
	}
	for _, it := range in {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, 0, domain.BadInput("Product id is required")
		}
		if it.Quantity < 1 || it.Quantity > MaxQuantity {
			return nil, 0, domain.BadInput(fmt.Sprintf("Quantity must be between 1 and %d", MaxQuantity))
		}
	}

	items := make([]domain.LineItem, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(catalogConcurrency)
	for i, it := range in {
		g.Go(func() error {
			p, err := s.products.FindByID(gctx, it.ProductID)
			if err != nil {
				return domain.Internal("failed to load product", err)
			}
			if p == nil {
				return domain.BadInput(fmt.Sprintf("Product %s not found", it.ProductID))
			}
			if !p.HasSize(it.Size) {
				return domain.BadInput(fmt.Sprintf("Size %q is not available for %s", it.Size, p.Name))
			}
			items[i] = domain.LineItem{
				ProductID: p.ID,
				Name:      p.Name,
				Size:      it.Size,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var total int64
	for _, it := range items {
		if it.UnitPrice < 0 || (it.UnitPrice > 0 && it.Quantity > math.MaxInt64/it.UnitPrice) {
			return nil, 0, errTotalTooLarge
		}
		line := it.UnitPrice * it.Quantity
		if total > math.MaxInt64-line {
			return nil, 0, errTotalTooLarge
		}
		total += line
	}
	return items, total, nil
}

func (s *OrderService) save(ctx context.Context, order *domain.Order) error {
	if err := s.repo.Save(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict("Payment reference already recorded")
		}
		return domain.Internal("failed to save order", err)
	}

	go s.publish(context.Background(), domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	})
	return nil
}

func (s *OrderService) publish(ctx context.Context, pattern string, evt any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, pattern, evt); err != nil {
		log.Printf("Failed to publish %s event: %v", pattern, err)
	}
}

// ListAll returns every order, newest first, with the buyer's email attached.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.OrderView, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list orders", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	emails := make(map[string]string, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, domain.Internal("failed to load order users", err)
		}
		for _, u := range users {
			emails[u.ID] = u.Email
		}
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, domain.OrderView{Order: o, UserEmail: emails[o.UserID]})
	}
	return views, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to list orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("failed to load order", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// UpdateStatus applies an admin transition. Moving to the current status is a
// no-op; moving out of Paid or Failed is a conflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	if !to.Valid() {
		return nil, domain.BadInput(fmt.Sprintf("Unknown status %q", to))
	}
	current, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == to {
		return current, nil
	}
	if !domain.CanTransition(current.Status, to) {
		return nil, domain.Conflict(fmt.Sprintf("Cannot move order from %s to %s", current.Status, to))
	}

	ok, err := s.repo.UpdateStatus(ctx, id, to, domain.SourcesOf(to))
	if err != nil {
		return nil, domain.Internal("failed to update order status", err)
	}
	if !ok {
		// Changed underneath us; report against the latest state.
		latest, err := s.GetOrderByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if latest.Status != to {
			return nil, domain.Conflict(fmt.Sprintf("Cannot move order from %s to %s", latest.Status, to))
		}
		return latest, nil
	}

	current.Status = to
	current.UpdatedAt = s.now()
	if to == domain.StatusPaid {
		go s.publish(context.Background(), domain.EventOrderPaid, domain.OrderPaidEvent{
			OrderID:       current.ID,
			PaymentMethod: current.PaymentMethod,
			ProviderRef:   current.ProviderRef,
			PaidAt:        current.UpdatedAt,
		})
	}
	return current, nil
}
