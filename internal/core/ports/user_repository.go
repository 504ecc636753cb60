package ports

import (
	"context"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role string // empty = all roles
	PageQuery
}

// UserRepository persists accounts. Emails are stored lower-cased and are
// unique; Create reports a collision as domain.ErrUserExists.
type UserRepository interface {
	// Create inserts u and sets u.ID on success.
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdatePassword stores a new hash together with its changed-at stamp.
	UpdatePassword(ctx context.Context, id, hash string, changedAt time.Time) error
	UpdateProfile(ctx context.Context, id, firstName, lastName, role string) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}
