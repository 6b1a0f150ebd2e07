package cache

import (
	"context"
	"log"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

const (
	productKeyPrefix   = "product:"
	miniStoreKeyPrefix = "ministores:active:"
)

type productRepository struct {
	repository.ProductRepository
	cache *Cache
}

// Products wraps repo so FindByID reads through the cache.
func Products(repo repository.ProductRepository, c *Cache) repository.ProductRepository {
	return &productRepository{ProductRepository: repo, cache: c}
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var cached domain.Product
	if r.cache.Get(ctx, productKeyPrefix+id, &cached) {
		return &cached, nil
	}

	p, err := r.ProductRepository.FindByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if err := r.cache.Set(ctx, productKeyPrefix+id, p); err != nil {
		log.Printf("cache product %s: %v", id, err)
	}
	return p, nil
}

type miniStoreRepository struct {
	repository.MiniStoreRepository
	cache *Cache
}

// MiniStores caches the active store listing and drops it on every write.
func MiniStores(repo repository.MiniStoreRepository, c *Cache) repository.MiniStoreRepository {
	return &miniStoreRepository{MiniStoreRepository: repo, cache: c}
}

func (r *miniStoreRepository) ListActive(ctx context.Context, limit int) ([]domain.MiniStore, error) {
	if limit < 0 {
		limit = 0
	}
	key := miniStoreKeyPrefix + strconv.Itoa(limit)

	var cached []domain.MiniStore
	if r.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	stores, err := r.MiniStoreRepository.ListActive(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, stores); err != nil {
		log.Printf("cache ministores: %v", err)
	}
	return stores, nil
}

func (r *miniStoreRepository) Create(ctx context.Context, store *domain.MiniStore) error {
	if err := r.MiniStoreRepository.Create(ctx, store); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *miniStoreRepository) Toggle(ctx context.Context, id string) (*domain.MiniStore, error) {
	s, err := r.MiniStoreRepository.Toggle(ctx, id)
	if err == nil && s != nil {
		r.invalidate(ctx)
	}
	return s, err
}

func (r *miniStoreRepository) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := r.MiniStoreRepository.Delete(ctx, id)
	if err == nil && ok {
		r.invalidate(ctx)
	}
	return ok, err
}

func (r *miniStoreRepository) invalidate(ctx context.Context) {
	if err := r.cache.DeletePrefix(ctx, miniStoreKeyPrefix); err != nil {
		log.Printf("invalidate ministores: %v", err)
	}
}
