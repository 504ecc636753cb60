package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type GalleryService struct {
	repo   ports.GalleryRepository
	logger zerolog.Logger
}

func NewGalleryService(repo ports.GalleryRepository, logger zerolog.Logger) *GalleryService {
	return &GalleryService{repo: repo, logger: logger}
}

func (s *GalleryService) List(ctx context.Context, filter ports.GalleryFilter, includeInactive bool) (ports.Page[*domain.GalleryItem], error) {
	if !includeInactive {
		active := true
		filter.Active = &active
	}
	if filter.Category == domain.CategoryAll {
		filter.Category = ""
	}
	filter.PageQuery = clampPage(filter.PageQuery, defaultGalleryLimit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.GalleryItem]{}, err
	}
	return ports.NewPage(items, total, filter.PageQuery), nil
}

// Get hides inactive items unless includeInactive is set.
func (s *GalleryService) Get(ctx context.Context, id string, includeInactive bool) (*domain.GalleryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive && !includeInactive {
		return nil, domain.ErrGalleryItemNotFound
	}
	return item, nil
}

func (s *GalleryService) Create(ctx context.Context, creator *domain.User, in ports.CreateGalleryInput) (*domain.GalleryItem, error) {
	now := time.Now().UTC()
	item := &domain.GalleryItem{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedBy:   creator.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Str("item_id", item.ID).Str("category", item.Category).Msg("gallery item created")
	return item, nil
}

func (s *GalleryService) Update(ctx context.Context, id string, patch ports.GalleryPatch) (*domain.GalleryItem, error) {
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *GalleryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("item_id", id).Msg("gallery item deleted")
	return nil
}

// Categories returns the "all" entry followed by every category that has at
// least one active item, in menu order.
func (s *GalleryService) Categories(ctx context.Context) ([]ports.CategorySummary, error) {
	counts, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int64, len(counts))
	var total int64
	for _, c := range counts {
		byCategory[c.Category] += c.Count
		total += c.Count
	}

	out := []ports.CategorySummary{{
		ID:    domain.CategoryAll,
		Name:  domain.CategoryLabel(domain.CategoryAll),
		Count: total,
	}}
	for _, cat := range domain.Categories {
		if n := byCategory[cat]; n > 0 {
			out = append(out, ports.CategorySummary{ID: cat, Name: domain.CategoryLabel(cat), Count: n})
		}
	}
	return out, nil
}
