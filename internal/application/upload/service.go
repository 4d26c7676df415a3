package upload

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/pkg/id"
)

// MaxImageSize caps a single upload at 5 MiB.
const MaxImageSize = 5 << 20

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Service interface {
	// UploadImage stores the image under a fresh key and returns its public
	// URL. Only jpeg, png, gif and webp are accepted.
	UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, key string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	objects objectStore
}

type ServiceDeps struct {
	ObjectStore objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{objects: deps.ObjectStore}
}

func (s *service) UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q: %w", contentType, domain.ErrBadRequest)
	}
	if size > MaxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes: %w", MaxImageSize, domain.ErrBadRequest)
	}

	key := path.Join("images", id.New()+ext)
	return s.objects.Upload(ctx, key, io.LimitReader(r, MaxImageSize), contentType)
}

func (s *service) DeleteImage(ctx context.Context, key string) error {
	return s.objects.Delete(ctx, key)
}
