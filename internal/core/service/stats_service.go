package service

import (
	"context"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

const recentProjectsLimit = 10

type StatsService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
}

func NewStatsService(projects ports.ProjectRepository, users ports.UserRepository) *StatsService {
	return &StatsService{projects: projects, users: users}
}

func (s *StatsService) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	byStatus, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.projects.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.projects.List(ctx, ports.ProjectFilter{
		PageQuery: ports.PageQuery{Page: 1, Limit: recentProjectsLimit, SortBy: "submittedAt", SortDesc: true},
	})
	if err != nil {
		return nil, err
	}

	counts := ports.ProjectCounts{
		Pending:    byStatus[domain.StatusPending],
		InReview:   byStatus[domain.StatusInReview],
		Approved:   byStatus[domain.StatusApproved],
		Rejected:   byStatus[domain.StatusRejected],
		InProgress: byStatus[domain.StatusInProgress],
		Completed:  byStatus[domain.StatusCompleted],
	}
	for _, n := range byStatus {
		counts.Total += n
	}
	if byType == nil {
		byType = []domain.TypeCount{}
	}
	if recent == nil {
		recent = []*domain.Project{}
	}

	return &ports.Dashboard{
		Projects:       counts,
		Users:          ports.UserCounts{Users: byRole[domain.RoleUser], Admins: byRole[domain.RoleAdmin]},
		ProjectTypes:   byType,
		RecentProjects: recent,
	}, nil
}
