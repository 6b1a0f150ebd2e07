package mysql

import (
	"time"

	"storefront-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Models lists the tables AutoMigrate has to create.
func Models() []any {
	return []any{&orderRow{}, &miniStoreRow{}, &productRow{}, &userRow{}}
}

type orderRow struct {
	ID            string            `gorm:"primaryKey;size:36"`
	UserID        string            `gorm:"size:64;not null;index:idx_user_created,priority:1"`
	Items         []domain.LineItem `gorm:"serializer:json;type:json"`
	Amount        int64             `gorm:"not null"`
	Currency      string            `gorm:"size:8;not null"`
	Address       domain.Address    `gorm:"serializer:json;type:json"`
	PaymentMethod string            `gorm:"size:16;not null;uniqueIndex:uniq_provider_ref,priority:1"`
	Status        string            `gorm:"size:16;not null;default:'Pending'"`
	ProviderRef   *string           `gorm:"size:191;uniqueIndex:uniq_provider_ref,priority:2"`
	PaymentRef    string            `gorm:"size:191"`
	CreatedAt     time.Time         `gorm:"index:idx_user_created,priority:2"`
	UpdatedAt     time.Time
	PaidAt        *time.Time
}

func (orderRow) TableName() string { return "orders" }

func (r *orderRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toOrderRow(o *domain.Order) *orderRow {
	row := &orderRow{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         o.Items,
		Amount:        o.Amount,
		Currency:      o.Currency,
		Address:       o.Address,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		PaymentRef:    o.PaymentRef,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		PaidAt:        o.PaidAt,
	}
	// NULL leaves cash orders outside the unique index.
	if o.ProviderRef != "" {
		ref := o.ProviderRef
		row.ProviderRef = &ref
	}
	return row
}

func (r *orderRow) toDomain() domain.Order {
	o := domain.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		Items:         r.Items,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Address:       r.Address,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Status:        domain.OrderStatus(r.Status),
		PaymentRef:    r.PaymentRef,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		PaidAt:        r.PaidAt,
	}
	if r.ProviderRef != nil {
		o.ProviderRef = *r.ProviderRef
	}
	return o
}

type miniStoreRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Slug        string    `gorm:"size:191;not null;uniqueIndex:uniq_slug"`
	DisplayName string    `gorm:"size:255;not null"`
	Bio         string    `gorm:"type:text"`
	AvatarURL   string    `gorm:"size:1024"`
	BannerURL   string    `gorm:"size:1024"`
	IsActive    bool      `gorm:"not null;index:idx_active_created,priority:1"`
	ProductIDs  []string  `gorm:"serializer:json;type:json"`
	CreatedAt   time.Time `gorm:"index:idx_active_created,priority:2"`
}

func (miniStoreRow) TableName() string { return "mini_stores" }

func (r *miniStoreRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *miniStoreRow) toDomain() domain.MiniStore {
	return domain.MiniStore{
		ID:          r.ID,
		Slug:        r.Slug,
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
		BannerURL:   r.BannerURL,
		IsActive:    r.IsActive,
		ProductIDs:  r.ProductIDs,
		CreatedAt:   r.CreatedAt,
	}
}

type productRow struct {
	ID          string   `gorm:"primaryKey;size:36"`
	Name        string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text"`
	Price       int64    `gorm:"not null"`
	Category    string   `gorm:"size:64;index"`
	SubCategory string   `gorm:"size:64"`
	Sizes       []string `gorm:"serializer:json;type:json"`
	Images      []string `gorm:"serializer:json;type:json"`
	Bestseller  bool
	CreatedAt   time.Time
}

func (productRow) TableName() string { return "products" }

func (r *productRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *productRow) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Sizes:       r.Sizes,
		Images:      r.Images,
		Bestseller:  r.Bestseller,
		CreatedAt:   r.CreatedAt,
	}
}

type userRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:255"`
	Email        string `gorm:"size:191;not null;uniqueIndex:uniq_email"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}
