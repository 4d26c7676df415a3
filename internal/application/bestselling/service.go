package bestselling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/pkg/id"
	"github.com/kapee-shop/api/internal/pkg/imageurl"
)

// placeholderImage backstops a promotion whose catalog product carries an
// unusable image of its own.
const placeholderImage = "https://kapee-shop-images.s3.amazonaws.com/placeholder.png"

type Service interface {
	// Promote cross-references a catalog product into the best-selling
	// collection. At most one entry may exist per product.
	Promote(ctx context.Context, req *domain.PromoteProductRequest) (*domain.BestSellingEntry, error)
	Get(ctx context.Context, entryID string) (*domain.BestSellingEntry, error)
	// List returns entries ordered by sales count, highest first.
	List(ctx context.Context, opts ListOptions) ([]domain.BestSellingEntry, error)
	Featured(ctx context.Context) ([]domain.BestSellingEntry, error)
	Update(ctx context.Context, entryID string, req *domain.UpdateBestSellingRequest) (*domain.BestSellingEntry, error)
	// AdjustSales applies a positive or negative delta to the sales count as
	// a single storage-level operation.
	AdjustSales(ctx context.Context, entryID string, delta int) (*domain.BestSellingEntry, error)
	Remove(ctx context.Context, entryID string) error
}

type ListOptions struct {
	Category     string
	FeaturedOnly bool
	Limit        int
}

type entryStore interface {
	Put(ctx context.Context, e *domain.BestSellingEntry) error
	Get(ctx context.Context, entryID string) (*domain.BestSellingEntry, error)
	GetByProduct(ctx context.Context, productID string) (*domain.BestSellingEntry, error)
	Update(ctx context.Context, entryID string, fields map[string]any) (*domain.BestSellingEntry, error)
	IncrementSales(ctx context.Context, entryID string, delta int) (*domain.BestSellingEntry, error)
	Delete(ctx context.Context, entryID string) error
	Scan(ctx context.Context) ([]domain.BestSellingEntry, error)
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type service struct {
	entries  entryStore
	products productStore
}

type ServiceDeps struct {
	EntryRepo   entryStore
	ProductRepo productStore
}

func NewService(deps ServiceDeps) Service {
	return &service{entries: deps.EntryRepo, products: deps.ProductRepo}
}

func (s *service) Promote(ctx context.Context, req *domain.PromoteProductRequest) (*domain.BestSellingEntry, error) {
	if existing, err := s.entries.GetByProduct(ctx, req.ProductID); err == nil {
		return nil, &domain.PromotionConflictError{Existing: existing}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", req.ProductID, domain.ErrNotFound)
	}

	now := time.Now().UTC()
	e := &domain.BestSellingEntry{
		EntryID:     id.New(),
		ProductID:   p.ProductID,
		Name:        fallback(req.Name, p.Name),
		Description: fallback(req.Description, p.Description),
		Category:    fallback(req.Category, p.Category),
		Price:       p.Price,
		Image:       s.resolveImage(fallback(req.Image, p.Image), p),
		Discount:    req.Discount,
		Featured:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.SalesCount != nil {
		e.SalesCount = *req.SalesCount
	}
	if req.Label != nil {
		e.Label = *req.Label
	}
	if req.Featured != nil {
		e.Featured = *req.Featured
	}

	if err := s.entries.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// resolveImage substitutes a usable URL when a promotion arrives with a
// relative path or a loopback address, falling back to the catalog image and
// then to a placeholder. Updates get no such grace, see Update.
func (s *service) resolveImage(candidate string, p *domain.Product) string {
	if imageurl.Classify(candidate) == imageurl.Valid {
		return candidate
	}
	substitute := p.Image
	if imageurl.Classify(substitute) != imageurl.Valid {
		substitute = placeholderImage
	}
	slog.Warn("substituting unusable image on promotion",
		"product_id", p.ProductID, "image", candidate, "substitute", substitute)
	return substitute
}

func (s *service) Get(ctx context.Context, entryID string) (*domain.BestSellingEntry, error) {
	return s.entries.Get(ctx, entryID)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]domain.BestSellingEntry, error) {
	all, err := s.entries.Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BestSellingEntry, 0, len(all))
	for _, e := range all {
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		if opts.FeaturedOnly && !e.Featured {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SalesCount > out[j].SalesCount })

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *service) Featured(ctx context.Context) ([]domain.BestSellingEntry, error) {
	return s.List(ctx, ListOptions{FeaturedOnly: true})
}

func (s *service) Update(ctx context.Context, entryID string, req *domain.UpdateBestSellingRequest) (*domain.BestSellingEntry, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Image != nil {
		if v := imageurl.Classify(*req.Image); v != imageurl.Valid {
			return nil, fmt.Errorf("image url %q is %s: %w", *req.Image, v, domain.ErrBadRequest)
		}
		fields["image"] = *req.Image
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.Label != nil {
		fields["label"] = *req.Label
	}
	if req.Featured != nil {
		fields["featured"] = *req.Featured
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return s.entries.Update(ctx, entryID, fields)
}

func (s *service) AdjustSales(ctx context.Context, entryID string, delta int) (*domain.BestSellingEntry, error) {
	if delta == 0 {
		return nil, fmt.Errorf("increment must be non-zero: %w", domain.ErrBadRequest)
	}
	return s.entries.IncrementSales(ctx, entryID, delta)
}

func (s *service) Remove(ctx context.Context, entryID string) error {
	if _, err := s.entries.Get(ctx, entryID); err != nil {
		return err
	}
	return s.entries.Delete(ctx, entryID)
}

func fallback(override *string, catalog string) string {
	if override != nil && *override != "" {
		return *override
	}
	return catalog
}
