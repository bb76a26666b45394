package service

import (
	"context"
	"time"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
)

// ProductService exposes catalog operations.
type ProductService interface {
	ListProducts(ctx context.Context, query string) ([]model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductService builds a ProductService over repo.
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo, now: time.Now}
}

func (s *productService) today() string {
	return s.now().Format(model.DateLayout)
}

func (s *productService) ListProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}
	return FilterProducts(products, query), nil
}

func (s *productService) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	if product.LastUpdated == "" {
		product.LastUpdated = s.today()
	}
	return s.repo.Create(ctx, product)
}

func (s *productService) UpdateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	if product.LastUpdated == "" {
		product.LastUpdated = s.today()
	}
	return s.repo.Update(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}
