package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req *domain.CreateBlogRequest) (*domain.Blog, error)
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
	// List returns published posts only, optionally narrowed by category or
	// author. Drafts stay private to the admin surface.
	List(ctx context.Context, category, author string) ([]domain.Blog, error)
	Search(ctx context.Context, term string) ([]domain.Blog, error)
	Update(ctx context.Context, blogID string, req *domain.UpdateBlogRequest) (*domain.Blog, error)
	Delete(ctx context.Context, blogID string) error
}

type blogStore interface {
	Put(ctx context.Context, b *domain.Blog) error
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
	ScanPublished(ctx context.Context) ([]domain.Blog, error)
	ScanByCategory(ctx context.Context, category string) ([]domain.Blog, error)
	ScanByAuthor(ctx context.Context, author string) ([]domain.Blog, error)
	Search(ctx context.Context, term string) ([]domain.Blog, error)
	Update(ctx context.Context, blogID string, updates map[string]interface{}) error
	Delete(ctx context.Context, blogID string) error
}

type service struct {
	blogs blogStore
}

type ServiceDeps struct {
	BlogRepo blogStore
}

func NewService(deps ServiceDeps) Service {
	return &service{blogs: deps.BlogRepo}
}

func (s *service) Create(ctx context.Context, req *domain.CreateBlogRequest) (*domain.Blog, error) {
	now := time.Now().UTC()
	b := &domain.Blog{
		BlogID:    id.New(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Category:  req.Category,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Published != nil && *req.Published {
		b.Published = true
		b.PublishedAt = &now
	}
	if err := s.blogs.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Get(ctx context.Context, blogID string) (*domain.Blog, error) {
	return s.blogs.Get(ctx, blogID)
}

func (s *service) List(ctx context.Context, category, author string) ([]domain.Blog, error) {
	switch {
	case category != "":
		return s.blogs.ScanByCategory(ctx, category)
	case author != "":
		return s.blogs.ScanByAuthor(ctx, author)
	default:
		return s.blogs.ScanPublished(ctx)
	}
}

func (s *service) Search(ctx context.Context, term string) ([]domain.Blog, error) {
	if term == "" {
		return nil, fmt.Errorf("empty search term: %w", domain.ErrBadRequest)
	}
	return s.blogs.Search(ctx, term)
}

func (s *service) Update(ctx context.Context, blogID string, req *domain.UpdateBlogRequest) (*domain.Blog, error) {
	current, err := s.blogs.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if req.Published != nil {
		fields["published"] = *req.Published
		// Stamp the first transition to published; unpublishing keeps the
		// original timestamp.
		if *req.Published && !current.Published {
			fields["published_at"] = time.Now().UTC().Format(time.RFC3339)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.blogs.Update(ctx, blogID, fields); err != nil {
		return nil, err
	}
	return s.blogs.Get(ctx, blogID)
}

func (s *service) Delete(ctx context.Context, blogID string) error {
	if _, err := s.blogs.Get(ctx, blogID); err != nil {
		return err
	}
	return s.blogs.Delete(ctx, blogID)
}
