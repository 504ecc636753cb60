package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type listUsersQuery struct {
	Role string `query:"role" validate:"omitempty,oneof=user admin"`
	PageParams
}

func (q *listUsersQuery) Normalize() {
	q.Role = strings.ToLower(strings.TrimSpace(q.Role))
	q.PageParams.normalize()
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role       query     string  false  "Filter by role"  Enums(user, admin)
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Param        sortBy     query     string  false  "createdAt, email, firstName, lastName or role"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  response{data=usersData}
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.service.ListUsers(c.Request().Context(), ports.UserFilter{
		Role:      q.Role,
		PageQuery: q.pageQuery(),
	})
	if err != nil {
		return err
	}

	users := make([]userView, len(page.Items))
	for i, u := range page.Items {
		users[i] = newUserView(u)
	}
	return success(c, http.StatusOK, "Users retrieved successfully", usersData{
		Users:      users,
		Pagination: newPagination(page),
	})
}
