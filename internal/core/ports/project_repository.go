package ports

import (
	"context"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// ProjectFilter carries the list filters for project submissions.
type ProjectFilter struct {
	UserID      string // empty = every owner (admin)
	Status      string
	ProjectType string
	PageQuery
}

// ProjectRepository defines persistence operations for project submissions.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus, at time.Time) (*domain.Project, error)
	Delete(ctx context.Context, id string) error

	CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error)
	CountByType(ctx context.Context) ([]domain.TypeCount, error)

	// FindUnowned and AssignOwner back the legacy link-projects tool.
	FindUnowned(ctx context.Context) ([]*domain.Project, error)
	AssignOwner(ctx context.Context, id, userID, name string) error
}
