package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type statsData struct {
	Stats *ports.Dashboard `json:"stats"`
}

// Dashboard handles GET /api/stats/dashboard.
//
// @Summary      Admin dashboard statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response{data=statsData}
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	d, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Dashboard statistics retrieved successfully", statsData{Stats: d})
}
