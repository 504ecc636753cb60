package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse documents the failure envelope rendered by the error handler.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message"`
}

type pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func newPagination[T any](p ports.Page[T]) pagination {
	return pagination{
		CurrentPage: p.Page,
		TotalPages:  p.TotalPages,
		TotalItems:  p.Total,
		HasNextPage: p.HasNext(),
		HasPrevPage: p.HasPrev(),
	}
}

func success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, response{Success: true, Message: message, Data: data})
}

// bind decodes the request into req and validates it. Decoding failures are
// reported as a generic 400.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
