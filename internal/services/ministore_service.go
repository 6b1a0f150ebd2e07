package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
	"storefront-service/internal/slug"
)

// DefaultStoreListLimit caps the public listing unless the caller asks for all stores.
const DefaultStoreListLimit = 8

type CreateStoreInput struct {
	Slug        string
	DisplayName string
	Bio         string
	AvatarURL   string
	BannerURL   string
	ProductIDs  []string
}

type MiniStoreService struct {
	repo      repository.MiniStoreRepository
	products  repository.ProductRepository
	allocator *slug.Allocator
	now       func() time.Time
}

func NewMiniStoreService(r repository.MiniStoreRepository, products repository.ProductRepository) *MiniStoreService {
	return &MiniStoreService{
		repo:      r,
		products:  products,
		allocator: slug.NewAllocator(r.ExistsSlug),
		now:       time.Now,
	}
}

func (s *MiniStoreService) Create(ctx context.Context, in CreateStoreInput) (*domain.MiniStore, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, domain.BadInput("displayName is required")
	}

	sl, err := s.allocator.Allocate(ctx, in.Slug, name)
	if err != nil {
		return nil, domain.Internal("failed to allocate slug", err)
	}

	store := &domain.MiniStore{
		Slug:        sl,
		DisplayName: name,
		Bio:         strings.TrimSpace(in.Bio),
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
		BannerURL:   strings.TrimSpace(in.BannerURL),
		IsActive:    true,
		ProductIDs:  compactIDs(in.ProductIDs),
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, store); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, domain.Internal("failed to create store", err)
	}
	return store, nil
}

// ListLimit turns the all/limit query parameters into a repository limit.
// A non-empty all means no cap; otherwise a positive limit, else the default.
func ListLimit(all string, limit int) int {
	if all != "" {
		return 0
	}
	if limit > 0 {
		return limit
	}
	return DefaultStoreListLimit
}

func (s *MiniStoreService) List(ctx context.Context, limit int) ([]domain.MiniStore, error) {
	stores, err := s.repo.ListActive(ctx, limit)
	if err != nil {
		return nil, domain.Internal("failed to list stores", err)
	}
	if stores == nil {
		stores = []domain.MiniStore{}
	}
	return stores, nil
}

// GetBySlug returns an active store with its products. Reserved and malformed
// slugs can never name a store.
func (s *MiniStoreService) GetBySlug(ctx context.Context, raw string) (*domain.MiniStoreDetail, error) {
	sl := strings.ToLower(strings.TrimSpace(raw))
	if slug.IsReserved(sl) || !slug.Valid(sl) {
		return nil, ErrStoreNotFound
	}

	store, err := s.repo.FindActiveBySlug(ctx, sl)
	if err != nil {
		return nil, domain.Internal("failed to load store", err)
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	detail := &domain.MiniStoreDetail{MiniStore: *store, Products: []domain.Product{}}
	if len(store.ProductIDs) > 0 {
		products, err := s.products.FindByIDs(ctx, store.ProductIDs)
		if err != nil {
			return nil, domain.Internal("failed to load store products", err)
		}
		if products != nil {
			detail.Products = products
		}
	}
	return detail, nil
}

func (s *MiniStoreService) Toggle(ctx context.Context, id string) (*domain.MiniStore, error) {
	store, err := s.repo.Toggle(ctx, id)
	if err != nil {
		return nil, domain.Internal("failed to toggle store", err)
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

func (s *MiniStoreService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Internal("failed to delete store", err)
	}
	if !ok {
		return ErrStoreNotFound
	}
	return nil
}

func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
