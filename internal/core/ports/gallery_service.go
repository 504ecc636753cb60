package ports

import (
	"context"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// CreateGalleryInput is the validated payload for a new showcase item.
type CreateGalleryInput struct {
	Title       string
	Description string
	Category    string
	Image       string
	IsActive    *bool // nil = active
}

// CategorySummary is one entry of the public category menu.
type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type GalleryService interface {
	// List returns gallery items. Unless includeInactive is set, only active
	// items are returned regardless of filter.Active.
	List(ctx context.Context, filter GalleryFilter, includeInactive bool) (Page[*domain.GalleryItem], error)
	Get(ctx context.Context, id string, includeInactive bool) (*domain.GalleryItem, error)
	Create(ctx context.Context, creator *domain.User, in CreateGalleryInput) (*domain.GalleryItem, error)
	Update(ctx context.Context, id string, patch GalleryPatch) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]CategorySummary, error)
}
