package mysql

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	row := &productRow{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Sizes:       p.Sizes,
		Images:      p.Images,
		Bestseller:  p.Bestseller,
		CreatedAt:   p.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		log.Printf("Product save error: %v", err)
		return err
	}
	p.ID = row.ID
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	p := row.toDomain()
	return &p, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *productRepo) find(q *gorm.DB) ([]domain.Product, error) {
	var rows []productRow
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("Product list error: %v", err)
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	row := &userRow{
		Name:         u.Name,
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		log.Printf("User save error: %v", err)
		return err
	}
	u.ID = row.ID
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

func (r *userRepo) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	u := row.toDomain()
	return &u, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []userRow
	if err := r.db.WithContext(ctx).Omit("password_hash").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
