package handler

import (
	"strings"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/normalize"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type createGalleryRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	Category    string `json:"category"    validate:"required,category"`
	Image       string `json:"image"       validate:"required,http_url"`
	IsActive    *bool  `json:"isActive"`
}

func (r *createGalleryRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = normalize.Category(r.Category)
	r.Image = strings.TrimSpace(r.Image)
}

// updateGalleryRequest is a partial update; absent fields are left as is.
type updateGalleryRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=100"`
	Description *string `json:"description" validate:"omitnil,min=1,max=500"`
	Category    *string `json:"category"    validate:"omitnil,category"`
	Image       *string `json:"image"       validate:"omitnil,http_url"`
	IsActive    *bool   `json:"isActive"`
}

func (r *updateGalleryRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(r.Title)
	trim(r.Description)
	trim(r.Image)
	if r.Category != nil {
		*r.Category = normalize.Category(*r.Category)
	}
}

type galleryQuery struct {
	Category string `query:"category" validate:"omitempty,categoryfilter"`
	PageParams
}

func (q *galleryQuery) Normalize() {
	q.Category = normalize.Category(q.Category)
	q.PageParams.normalize()
}

type adminGalleryQuery struct {
	Category string `query:"category" validate:"omitempty,categoryfilter"`
	IsActive string `query:"isActive" validate:"omitempty,oneof=true false"`
	PageParams
}

func (q *adminGalleryQuery) Normalize() {
	q.Category = normalize.Category(q.Category)
	q.IsActive = strings.ToLower(strings.TrimSpace(q.IsActive))
	q.PageParams.normalize()
}

func (q adminGalleryQuery) active() *bool {
	if q.IsActive == "" {
		return nil
	}
	v := q.IsActive == "true"
	return &v
}

type galleryItemData struct {
	GalleryItem *domain.GalleryItem `json:"galleryItem"`
}

type galleryItemsData struct {
	GalleryItems []*domain.GalleryItem `json:"galleryItems"`
	Pagination   pagination            `json:"pagination"`
}

type categoriesData struct {
	Categories []ports.CategorySummary `json:"categories"`
}

type imageData struct {
	URL string `json:"url"`
}
