package handler

import (
	"strings"

	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// PageParams holds the pagination and sort parameters shared by every list
// endpoint. Limits above the maximum are capped by the services. It is
// exported so echo binds into it when embedded.
type PageParams struct {
	Page      int    `query:"page"      validate:"omitempty,min=1"`
	Limit     int    `query:"limit"     validate:"omitempty,min=1"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

func (q *PageParams) normalize() {
	q.SortBy = strings.TrimSpace(q.SortBy)
	q.SortOrder = strings.ToLower(strings.TrimSpace(q.SortOrder))
}

func (q PageParams) pageQuery() ports.PageQuery {
	return ports.PageQuery{
		Page:     q.Page,
		Limit:    q.Limit,
		SortBy:   q.SortBy,
		SortDesc: q.SortOrder != "asc",
	}
}
