package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/api/metrics"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

const imageField = "image"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// GalleryHandler serves the public showcase and its admin management.
type GalleryHandler struct {
	service ports.GalleryService
	images  ports.ImageStore // nil when object storage is not configured
}

func NewGalleryHandler(service ports.GalleryService, images ports.ImageStore) *GalleryHandler {
	return &GalleryHandler{service: service, images: images}
}

// List handles GET /api/gallery. Admins also see inactive items.
//
// @Summary      List gallery items
// @Tags         gallery
// @Produce      json
// @Param        category   query     string  false  "Category, or all"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size (default 12, max 100)"
// @Param        sortBy     query     string  false  "createdAt, updatedAt, title or category"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  response{data=galleryItemsData}
// @Failure      400        {object}  errorResponse
// @Router       /api/gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	var q galleryQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), ports.GalleryFilter{
		Category:  q.Category,
		PageQuery: q.pageQuery(),
	}, isAdmin(c))
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Gallery items retrieved successfully", galleryItemsData{
		GalleryItems: page.Items,
		Pagination:   newPagination(page),
	})
}

// ListAll handles GET /api/gallery/admin/all.
//
// @Summary      List gallery items including inactive ones
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        category   query     string  false  "Category, or all"
// @Param        isActive   query     string  false  "true or false"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size (default 12, max 100)"
// @Param        sortBy     query     string  false  "createdAt, updatedAt, title or category"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  response{data=galleryItemsData}
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /api/gallery/admin/all [get]
func (h *GalleryHandler) ListAll(c echo.Context) error {
	var q adminGalleryQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), ports.GalleryFilter{
		Category:  q.Category,
		Active:    q.active(),
		PageQuery: q.pageQuery(),
	}, true)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Gallery items retrieved successfully", galleryItemsData{
		GalleryItems: page.Items,
		Pagination:   newPagination(page),
	})
}

// Categories handles GET /api/gallery/categories.
//
// @Summary      Gallery categories with item counts
// @Tags         gallery
// @Produce      json
// @Success      200  {object}  response{data=categoriesData}
// @Router       /api/gallery/categories [get]
func (h *GalleryHandler) Categories(c echo.Context) error {
	cats, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Gallery categories retrieved successfully", categoriesData{Categories: cats})
}

// Get handles GET /api/gallery/:id.
//
// @Summary      Get a gallery item
// @Tags         gallery
// @Produce      json
// @Param        id   path      string  true  "Gallery item ID"
// @Success      200  {object}  response{data=galleryItemData}
// @Failure      404  {object}  errorResponse
// @Router       /api/gallery/{id} [get]
func (h *GalleryHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"), isAdmin(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Gallery item retrieved successfully", galleryItemData{GalleryItem: item})
}

// Create handles POST /api/gallery.
//
// @Summary      Create a gallery item
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGalleryRequest  true  "Gallery item"
// @Success      201   {object}  response{data=galleryItemData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/gallery [post]
func (h *GalleryHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createGalleryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), user, ports.CreateGalleryInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}

	metrics.GalleryItemsCreatedTotal.WithLabelValues(item.Category).Inc()
	return success(c, http.StatusCreated, "Gallery item created successfully", galleryItemData{GalleryItem: item})
}

// Update handles PATCH /api/gallery/:id.
//
// @Summary      Update a gallery item
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Gallery item ID"
// @Param        body  body      updateGalleryRequest  true  "Fields to change"
// @Success      200   {object}  response{data=galleryItemData}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/gallery/{id} [patch]
func (h *GalleryHandler) Update(c echo.Context) error {
	var req updateGalleryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.GalleryPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Gallery item updated successfully", galleryItemData{GalleryItem: item})
}

// Delete handles DELETE /api/gallery/:id.
//
// @Summary      Delete a gallery item
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Gallery item ID"
// @Success      200  {object}  response
// @Failure      404  {object}  errorResponse
// @Router       /api/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Gallery item deleted successfully", nil)
}

// UploadImage handles POST /api/gallery/images and stores the multipart
// "image" file in object storage.
//
// @Summary      Upload a gallery image
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG, GIF or WebP image"
// @Success      201    {object}  response{data=imageData}
// @Failure      400    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /api/gallery/images [post]
func (h *GalleryHandler) UploadImage(c echo.Context) error {
	if h.images == nil {
		return domain.ErrStorageDisabled
	}

	fh, err := c.FormFile(imageField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is empty")
	}
	contentType := http.DetectContentType(head[:n])
	if !allowedImageTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "image must be a JPEG, PNG, GIF or WebP file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	url, err := h.images.Upload(c.Request().Context(), fh.Filename, contentType, file, fh.Size)
	if err != nil {
		return err
	}

	metrics.GalleryImagesUploadedTotal.Inc()
	return success(c, http.StatusCreated, "Image uploaded successfully", imageData{URL: url})
}
