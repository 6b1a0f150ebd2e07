package mysql

import (
	"context"
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type miniStoreRepo struct {
	db *gorm.DB
}

func NewMiniStoreRepository(db *gorm.DB) repository.MiniStoreRepository {
	return &miniStoreRepo{db: db}
}

func (r *miniStoreRepo) ExistsSlug(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&miniStoreRow{}).Where("slug = ?", slug).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *miniStoreRepo) Create(ctx context.Context, store *domain.MiniStore) error {
	row := &miniStoreRow{
		Slug:        store.Slug,
		DisplayName: store.DisplayName,
		Bio:         store.Bio,
		AvatarURL:   store.AvatarURL,
		BannerURL:   store.BannerURL,
		IsActive:    store.IsActive,
		ProductIDs:  store.ProductIDs,
		CreatedAt:   store.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		log.Printf("MiniStore save error: %v", err)
		return err
	}
	store.ID = row.ID
	return nil
}

func (r *miniStoreRepo) ListActive(ctx context.Context, limit int) ([]domain.MiniStore, error) {
	q := r.db.WithContext(ctx).Omit("product_ids").Where("is_active = ?", true).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []miniStoreRow
	if err := q.Find(&rows).Error; err != nil {
		log.Printf("MiniStore list error: %v", err)
		return nil, err
	}
	out := make([]domain.MiniStore, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *miniStoreRepo) FindActiveBySlug(ctx context.Context, slug string) (*domain.MiniStore, error) {
	var row miniStoreRow
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s := row.toDomain()
	return &s, nil
}

func (r *miniStoreRepo) Toggle(ctx context.Context, id string) (*domain.MiniStore, error) {
	var out *domain.MiniStore
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row miniStoreRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		row.IsActive = !row.IsActive
		if err := tx.Model(&row).Update("is_active", row.IsActive).Error; err != nil {
			return err
		}
		s := row.toDomain()
		out = &s
		return nil
	})
	if err != nil {
		log.Printf("MiniStore toggle error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *miniStoreRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&miniStoreRow{})
	if res.Error != nil {
		log.Printf("MiniStore delete error: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
