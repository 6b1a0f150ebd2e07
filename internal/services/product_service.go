package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/shopspring/decimal"
)

type AddProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal // major units
	Category    string
	SubCategory string
	Sizes       json.RawMessage
	Images      []string
	Bestseller  bool
}

type ProductService struct {
	repo repository.ProductRepository
	now  func() time.Time
}

func NewProductService(r repository.ProductRepository) *ProductService {
	return &ProductService{repo: r, now: time.Now}
}

func (s *ProductService) Add(ctx context.Context, in AddProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.BadInput("Product name is required")
	}
	price, err := domain.ToMinor(in.Price)
	if err != nil {
		return nil, err
	}
	sizes, err := domain.ParseSizes(in.Sizes)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Category:    strings.TrimSpace(in.Category),
		SubCategory: strings.TrimSpace(in.SubCategory),
		Sizes:       domain.DefaultSizes(in.Category, sizes),
		Images:      in.Images,
		Bestseller:  in.Bestseller,
		CreatedAt:   s.now(),
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, domain.Internal("failed to save product", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list products", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *ProductService) Single(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, domain.Internal("failed to load product", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}
