package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type GalleryRepository struct {
	mu    sync.RWMutex
	items map[string]domain.GalleryItem
}

func NewGalleryRepository() *GalleryRepository {
	return &GalleryRepository{items: make(map[string]domain.GalleryItem)}
}

func (r *GalleryRepository) Create(_ context.Context, item *domain.GalleryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = newID()
	r.items[item.ID] = *item
	return nil
}

func (r *GalleryRepository) FindByID(_ context.Context, id string) (*domain.GalleryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrGalleryItemNotFound
	}
	return &item, nil
}

func (r *GalleryRepository) List(_ context.Context, filter ports.GalleryFilter) ([]*domain.GalleryItem, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.GalleryItem
	for _, item := range r.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Active != nil && item.IsActive != *filter.Active {
			continue
		}
		matched = append(matched, &item)
	}

	slices.SortStableFunc(matched, func(a, b *domain.GalleryItem) int {
		var c int
		switch filter.SortBy {
		case "updatedAt":
			c = compareTime(a.UpdatedAt, b.UpdatedAt)
		case "title":
			c = compareString(a.Title, b.Title)
		case "category":
			c = compareString(a.Category, b.Category)
		default:
			c = compareTime(a.CreatedAt, b.CreatedAt)
		}
		if c == 0 {
			c = compareString(a.ID, b.ID)
		}
		return order(c, filter.SortDesc)
	})

	return paginate(matched, filter.PageQuery), int64(len(matched)), nil
}

func (r *GalleryRepository) Update(_ context.Context, id string, patch ports.GalleryPatch) (*domain.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrGalleryItemNotFound
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return &item, nil
}

func (r *GalleryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrGalleryItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *GalleryRepository) CategoryCounts(_ context.Context) ([]domain.CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, item := range r.items {
		if item.IsActive {
			counts[item.Category]++
		}
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, domain.CategoryCount{Category: c, Count: n})
	}
	return out, nil
}

func (r *GalleryRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.items))
	r.items = make(map[string]domain.GalleryItem)
	return n, nil
}
