// Package seed provisions accounts and sample content outside the HTTP API.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/normalize"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// ErrNoAdmin is returned when content needs an owner but no admin exists.
var ErrNoAdmin = errors.New("no admin account exists; run the admin command first")

// AdminProvisioner creates or promotes the admin account.
type AdminProvisioner interface {
	EnsureAdmin(ctx context.Context, in ports.AdminInput) (*domain.User, bool, error)
}

type Seeder struct {
	admins      AdminProvisioner
	users       ports.UserRepository
	projects    ports.ProjectRepository
	galleryRepo ports.GalleryRepository
	gallery     ports.GalleryService
	logger      zerolog.Logger
}

func NewSeeder(
	admins AdminProvisioner,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	galleryRepo ports.GalleryRepository,
	gallery ports.GalleryService,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		admins:      admins,
		users:       users,
		projects:    projects,
		galleryRepo: galleryRepo,
		gallery:     gallery,
		logger:      logger,
	}
}

// Admin provisions the admin account described by in.
func (s *Seeder) Admin(ctx context.Context, in ports.AdminInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, errors.New("admin email and password are required")
	}
	if len(in.Password) < 6 {
		return nil, errors.New("admin password must be at least 6 characters")
	}
	// bcrypt only reads the first 72 bytes.
	if len(in.Password) > 72 {
		return nil, errors.New("admin password must be at most 72 bytes")
	}

	user, created, err := s.admins.EnsureAdmin(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("ensure admin: %w", err)
	}

	ev := s.logger.Info().Str("user_id", user.ID).Str("email", user.Email)
	if created {
		ev.Msg("admin account created")
	} else {
		ev.Msg("existing account promoted to admin and password reset")
	}
	return user, nil
}

// Gallery replaces the gallery contents with the showcase set, owned by the
// oldest admin account. It returns the number of items created.
func (s *Seeder) Gallery(ctx context.Context) (int, error) {
	owner, err := s.firstAdmin(ctx)
	if err != nil {
		return 0, err
	}

	removed, err := s.galleryRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear gallery: %w", err)
	}
	s.logger.Info().Int64("removed", removed).Msg("gallery cleared")

	for i, item := range showcase {
		if _, err := s.gallery.Create(ctx, owner, item); err != nil {
			return i, fmt.Errorf("create %q: %w", item.Title, err)
		}
	}
	s.logger.Info().Int("created", len(showcase)).Str("owner", owner.Email).Msg("gallery seeded")
	return len(showcase), nil
}

// LinkReport summarises a LinkProjects run.
type LinkReport struct {
	Linked    int
	Unmatched []string // ids of projects with no account for their email
}

// LinkProjects attaches projects stored without an owner to the account
// whose email matches the submitter's. Accounts are never created; projects
// without a matching account are reported. With dryRun nothing is written.
func (s *Seeder) LinkProjects(ctx context.Context, dryRun bool) (LinkReport, error) {
	var report LinkReport

	orphans, err := s.projects.FindUnowned(ctx)
	if err != nil {
		return report, fmt.Errorf("find unowned projects: %w", err)
	}

	for _, p := range orphans {
		user, err := s.users.FindByEmail(ctx, normalize.Email(p.SubmitterEmail))
		if errors.Is(err, domain.ErrUserNotFound) {
			report.Unmatched = append(report.Unmatched, p.ID)
			s.logger.Warn().Str("project_id", p.ID).Msg("no account for submitter email")
			continue
		}
		if err != nil {
			return report, err
		}

		if !dryRun {
			if err := s.projects.AssignOwner(ctx, p.ID, user.ID, user.Name()); err != nil {
				return report, fmt.Errorf("assign owner of %s: %w", p.ID, err)
			}
		}
		report.Linked++
		s.logger.Info().Str("project_id", p.ID).Str("user_id", user.ID).Bool("dry_run", dryRun).Msg("project linked")
	}
	return report, nil
}

func (s *Seeder) firstAdmin(ctx context.Context) (*domain.User, error) {
	admins, _, err := s.users.List(ctx, ports.UserFilter{
		Role:      domain.RoleAdmin,
		PageQuery: ports.PageQuery{Page: 1, Limit: 1, SortBy: "createdAt"},
	})
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		return nil, ErrNoAdmin
	}
	return admins[0], nil
}
