package mysql

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	row := toOrderRow(order)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		log.Printf("Database save error: %v", err)
		return err
	}
	if row.ID == "" {
		return errors.New("failed to assign order ID")
	}
	order.ID = row.ID
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *orderRepo) FindByProviderRef(ctx context.Context, method domain.PaymentMethod, ref string) (*domain.Order, error) {
	return r.first(ctx, "payment_method = ? AND provider_ref = ?", string(method), ref)
}

func (r *orderRepo) first(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	var row orderRow
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("Order find error: %v", err)
		return nil, err
	}
	o := row.toDomain()
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *orderRepo) find(q *gorm.DB) ([]domain.Order, error) {
	var rows []orderRow
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("Order list error: %v", err)
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, method domain.PaymentMethod, ref, paymentRef string, at time.Time) (bool, error) {
	updates := map[string]any{
		"status":     string(domain.StatusPaid),
		"paid_at":    at,
		"updated_at": at,
	}
	if paymentRef != "" {
		updates["payment_ref"] = paymentRef
	}

	res := r.db.WithContext(ctx).Model(&orderRow{}).
		Where("payment_method = ? AND provider_ref = ? AND status IN ?",
			string(method), ref, []string{string(domain.StatusPending), string(domain.StatusInitiated)}).
		Updates(updates)
	if res.Error != nil {
		log.Printf("Order mark paid error: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, from []domain.OrderStatus) (bool, error) {
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}

	var matched bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row orderRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status IN ?", id, states).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		matched = true
		return tx.Model(&row).Updates(map[string]any{"status": string(to), "updated_at": time.Now()}).Error
	})
	if err != nil {
		log.Printf("Order status update error: %v", err)
		return false, err
	}
	return matched, nil
}
