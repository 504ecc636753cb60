package ports

import (
	"context"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// SubmitProjectInput is the validated, normalised intake payload.
type SubmitProjectInput struct {
	ProjectType string
	Budget      string
	Timeline    string
	Description string
}

type ProjectService interface {
	Submit(ctx context.Context, owner *domain.User, in SubmitProjectInput) (*domain.Project, error)
	ListMine(ctx context.Context, owner *domain.User, filter ProjectFilter) (Page[*domain.Project], error)
	ListAll(ctx context.Context, filter ProjectFilter) (Page[*domain.Project], error)
	Get(ctx context.Context, id string, requester *domain.User) (*domain.Project, error)
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
