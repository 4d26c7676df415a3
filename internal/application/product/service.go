package product

import (
	"context"
	"fmt"
	"time"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	Update(ctx context.Context, productID string, req *domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
	// Seed loads a starter catalog. It refuses to run against a non-empty
	// table so a stray call cannot duplicate the catalog.
	Seed(ctx context.Context, products []domain.CreateProductRequest) (int, error)
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
	Scan(ctx context.Context) ([]domain.Product, error)
	ScanByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	products productStore
}

type ServiceDeps struct {
	ProductRepo productStore
}

func NewService(deps ServiceDeps) Service {
	return &service{products: deps.ProductRepo}
}

func (s *service) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.products.Get(ctx, productID)
}

func (s *service) List(ctx context.Context, category string) ([]domain.Product, error) {
	if category != "" {
		return s.products.ScanByCategory(ctx, category)
	}
	return s.products.Scan(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]domain.Product, error) {
	if term == "" {
		return nil, fmt.Errorf("empty search term: %w", domain.ErrBadRequest)
	}
	return s.products.Search(ctx, term)
}

func (s *service) Update(ctx context.Context, productID string, req *domain.UpdateProductRequest) (*domain.Product, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.products.Update(ctx, productID, fields); err != nil {
		return nil, err
	}
	return s.products.Get(ctx, productID)
}

func (s *service) Delete(ctx context.Context, productID string) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}
	return s.products.Delete(ctx, productID)
}

func (s *service) Seed(ctx context.Context, products []domain.CreateProductRequest) (int, error) {
	n, err := s.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, fmt.Errorf("catalog already has %d products: %w", n, domain.ErrConflict)
	}

	for i := range products {
		if _, err := s.Create(ctx, &products[i]); err != nil {
			return i, err
		}
	}
	return len(products), nil
}
