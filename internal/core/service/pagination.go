package service

import "github.com/mustardworks/portfolio-api/internal/core/ports"

const (
	defaultPageLimit    = 10
	defaultGalleryLimit = 12
	maxPageLimit        = 100
	// maxPage keeps (page-1)*limit far inside int64.
	maxPage = 1_000_000
)

func clampPage(q ports.PageQuery, defaultLimit int) ports.PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > maxPage {
		q.Page = maxPage
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	return q
}
