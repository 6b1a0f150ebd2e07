package mocks

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/payment"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockMiniStoreRepository struct {
	mock.Mock
}

type MockProductRepository struct {
	mock.Mock
}

type MockUserRepository struct {
	mock.Mock
}

type MockCheckoutGateway struct {
	mock.Mock
}

type MockCheckoutWebhook struct {
	mock.Mock
}

type MockOrderGateway struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message any) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByProviderRef(ctx context.Context, method domain.PaymentMethod, ref string) (*domain.Order, error) {
	args := m.Called(ctx, method, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, method domain.PaymentMethod, ref, paymentRef string, at time.Time) (bool, error) {
	args := m.Called(ctx, method, ref, paymentRef, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, from []domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, to, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockMiniStoreRepository) ExistsSlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockMiniStoreRepository) Create(ctx context.Context, store *domain.MiniStore) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockMiniStoreRepository) ListActive(ctx context.Context, limit int) ([]domain.MiniStore, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MiniStore), args.Error(1)
}

func (m *MockMiniStoreRepository) FindActiveBySlug(ctx context.Context, slug string) (*domain.MiniStore, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MiniStore), args.Error(1)
}

func (m *MockMiniStoreRepository) Toggle(ctx context.Context, id string) (*domain.MiniStore, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MiniStore), args.Error(1)
}

func (m *MockMiniStoreRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutGateway) GetSession(ctx context.Context, id string) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutWebhook) ParseWebhook(payload []byte, signature string) (*payment.CheckoutSession, bool, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Bool(1), args.Error(2)
}

func (m *MockOrderGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payment.ProviderOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ProviderOrder), args.Error(1)
}

func (m *MockOrderGateway) KeyID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockTokenIssuer) IssueUser(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) IssueAdmin() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
