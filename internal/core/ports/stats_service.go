package ports

import (
	"context"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// ProjectCounts breaks submissions down by status.
type ProjectCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InReview   int64 `json:"inReview"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

type UserCounts struct {
	Users  int64 `json:"users"`
	Admins int64 `json:"admins"`
}

// Dashboard is the admin overview.
type Dashboard struct {
	Projects       ProjectCounts      `json:"projects"`
	Users          UserCounts         `json:"users"`
	ProjectTypes   []domain.TypeCount `json:"projectTypes"`
	RecentProjects []*domain.Project  `json:"recentProjects"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}
