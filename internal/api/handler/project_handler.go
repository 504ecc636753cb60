package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/api/metrics"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// ProjectHandler handles the project intake and its admin review.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Submit handles POST /api/projects/submit.
//
// @Summary      Submit a project request
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitProjectRequest  true  "Project details"
// @Success      201   {object}  response{data=projectData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/projects/submit [post]
func (h *ProjectHandler) Submit(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req submitProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.service.Submit(c.Request().Context(), user, ports.SubmitProjectInput{
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Timeline:    req.Timeline,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsSubmittedTotal.WithLabelValues(project.ProjectType).Inc()
	return success(c, http.StatusCreated, "Project submitted successfully", projectData{Project: project})
}

// ListMine handles GET /api/projects/my-projects.
//
// @Summary      List the caller's projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Filter by status"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Param        sortBy     query     string  false  "submittedAt, updatedAt, status or projectType"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  response{data=projectsData}
// @Failure      401        {object}  errorResponse
// @Router       /api/projects/my-projects [get]
func (h *ProjectHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var q myProjectsQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.service.ListMine(c.Request().Context(), user, ports.ProjectFilter{
		Status:    q.Status,
		PageQuery: q.pageQuery(),
	})
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Your projects retrieved successfully", projectsData{
		Projects:   page.Items,
		Pagination: newPagination(page),
	})
}

// List handles GET /api/projects.
//
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"
// @Param        projectType  query     string  false  "Filter by project type"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Param        sortBy       query     string  false  "submittedAt, updatedAt, status or projectType"
// @Param        sortOrder    query     string  false  "asc or desc"
// @Success      200          {object}  response{data=projectsData}
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var q listProjectsQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.service.ListAll(c.Request().Context(), ports.ProjectFilter{
		Status:      q.Status,
		ProjectType: q.ProjectType,
		PageQuery:   q.pageQuery(),
	})
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Projects retrieved successfully", projectsData{
		Projects:   page.Items,
		Pagination: newPagination(page),
	})
}

// Get handles GET /api/projects/:id. Users may only read their own projects.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response{data=projectData}
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), c.Param("id"), user)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Project retrieved successfully", projectData{Project: project})
}

// UpdateStatus handles PATCH /api/projects/:id/status.
//
// @Summary      Update a project's status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  response{data=projectData}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.ProjectStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.ProjectStatusTransitionsTotal.WithLabelValues(string(project.Status)).Inc()
	return success(c, http.StatusOK, "Project status updated successfully", projectData{Project: project})
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Project deleted successfully", nil)
}
