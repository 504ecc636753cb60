package service

import (
	"context"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// UserService backs the admin user listing.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) (ports.Page[*domain.User], error) {
	filter.PageQuery = clampPage(filter.PageQuery, defaultPageLimit)
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.User]{}, err
	}
	return ports.NewPage(users, total, filter.PageQuery), nil
}
