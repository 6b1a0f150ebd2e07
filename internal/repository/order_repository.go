package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/domain"
)

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// Find methods return (nil, nil) when nothing matches.

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByProviderRef(ctx context.Context, method domain.PaymentMethod, ref string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	// MarkPaid moves the order bound to (method, ref) from Pending or Initiated to
	// Paid in a single conditional write. It reports whether a row changed.
	MarkPaid(ctx context.Context, method domain.PaymentMethod, ref, paymentRef string, at time.Time) (bool, error)
	// UpdateStatus sets status to `to` only while the current status is one of from.
	UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, from []domain.OrderStatus) (bool, error)
}

type MiniStoreRepository interface {
	ExistsSlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, store *domain.MiniStore) error
	// ListActive returns active stores newest first; limit <= 0 means no limit.
	ListActive(ctx context.Context, limit int) ([]domain.MiniStore, error)
	FindActiveBySlug(ctx context.Context, slug string) (*domain.MiniStore, error)
	// Toggle flips isActive atomically and returns the updated store.
	Toggle(ctx context.Context, id string) (*domain.MiniStore, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}
