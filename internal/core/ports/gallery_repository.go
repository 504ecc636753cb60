package ports

import (
	"context"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// GalleryFilter carries the list filters for gallery items.
type GalleryFilter struct {
	Category string // empty = every category
	Active   *bool  // nil = active and inactive
	PageQuery
}

// GalleryPatch holds the fields of a partial update; nil fields are left as is.
type GalleryPatch struct {
	Title       *string
	Description *string
	Category    *string
	Image       *string
	IsActive    *bool
}

func (p GalleryPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Image == nil && p.IsActive == nil
}

// GalleryRepository defines persistence operations for showcase items.
type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	FindByID(ctx context.Context, id string) (*domain.GalleryItem, error)
	List(ctx context.Context, filter GalleryFilter) ([]*domain.GalleryItem, int64, error)
	Update(ctx context.Context, id string, patch GalleryPatch) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	// CategoryCounts counts active items per category.
	CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error)
	DeleteAll(ctx context.Context) (int64, error)
}
