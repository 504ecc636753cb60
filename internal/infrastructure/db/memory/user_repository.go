package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	u.ID = newID()
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, hash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.PasswordChangedAt = changedAt
	r.users[id] = u
	return nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id, firstName, lastName, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FirstName, u.LastName, u.Role = firstName, lastName, role
	r.users[id] = u
	return nil
}

// Delete removes an account. Only tests use it, to simulate a user deleted
// while their token is still in circulation.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRepository) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		matched = append(matched, &u)
	}

	slices.SortStableFunc(matched, func(a, b *domain.User) int {
		var c int
		switch filter.SortBy {
		case "firstName":
			c = compareString(a.FirstName, b.FirstName)
		case "lastName":
			c = compareString(a.LastName, b.LastName)
		case "email":
			c = compareString(a.Email, b.Email)
		case "role":
			c = compareString(a.Role, b.Role)
		default:
			c = compareTime(a.CreatedAt, b.CreatedAt)
		}
		if c == 0 {
			c = compareString(a.ID, b.ID)
		}
		return order(c, filter.SortDesc)
	})

	return paginate(matched, filter.PageQuery), int64(len(matched)), nil
}

func (r *UserRepository) CountByRole(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64)
	for _, u := range r.users {
		out[u.Role]++
	}
	return out, nil
}
