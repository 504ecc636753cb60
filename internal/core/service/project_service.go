package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// Submit records a new intake submission owned by owner. The owner's name and
// email are copied onto the project.
func (s *ProjectService) Submit(ctx context.Context, owner *domain.User, in ports.SubmitProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	p := &domain.Project{
		UserID:         owner.ID,
		SubmitterName:  owner.Name(),
		SubmitterEmail: owner.Email,
		ProjectType:    in.ProjectType,
		Budget:         in.Budget,
		Timeline:       in.Timeline,
		Description:    in.Description,
		Status:         domain.StatusPending,
		SubmittedAt:    now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("user_id", owner.ID).Msg("failed to store project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", p.ID).
		Str("user_id", owner.ID).
		Str("project_type", p.ProjectType).
		Msg("project submitted")
	return p, nil
}

// ListMine lists the projects owned by owner; filter.UserID is overridden.
func (s *ProjectService) ListMine(ctx context.Context, owner *domain.User, filter ports.ProjectFilter) (ports.Page[*domain.Project], error) {
	filter.UserID = owner.ID
	return s.list(ctx, filter)
}

func (s *ProjectService) ListAll(ctx context.Context, filter ports.ProjectFilter) (ports.Page[*domain.Project], error) {
	return s.list(ctx, filter)
}

func (s *ProjectService) list(ctx context.Context, filter ports.ProjectFilter) (ports.Page[*domain.Project], error) {
	filter.PageQuery = clampPage(filter.PageQuery, defaultPageLimit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.Project]{}, err
	}
	return ports.NewPage(items, total, filter.PageQuery), nil
}

// Get returns the project if requester owns it or is an admin.
func (s *ProjectService) Get(ctx context.Context, id string, requester *domain.User) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && !p.OwnedBy(requester.ID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (s *ProjectService) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	p, err := s.repo.UpdateStatus(ctx, id, status, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", id).Str("status", string(status)).Msg("project status updated")
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}
