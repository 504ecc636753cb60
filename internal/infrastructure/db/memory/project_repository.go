package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]domain.Project)}
}

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	r.projects[p.ID] = *p
	return nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (r *ProjectRepository) List(_ context.Context, filter ports.ProjectFilter) ([]*domain.Project, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Project
	for _, p := range r.projects {
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		if filter.ProjectType != "" && p.ProjectType != filter.ProjectType {
			continue
		}
		matched = append(matched, &p)
	}

	slices.SortStableFunc(matched, func(a, b *domain.Project) int {
		var c int
		switch filter.SortBy {
		case "updatedAt":
			c = compareTime(a.UpdatedAt, b.UpdatedAt)
		case "status":
			c = compareString(string(a.Status), string(b.Status))
		case "projectType":
			c = compareString(a.ProjectType, b.ProjectType)
		default:
			c = compareTime(a.SubmittedAt, b.SubmittedAt)
		}
		if c == 0 {
			c = compareString(a.ID, b.ID)
		}
		return order(c, filter.SortDesc)
	})

	return paginate(matched, filter.PageQuery), int64(len(matched)), nil
}

func (r *ProjectRepository) UpdateStatus(_ context.Context, id string, status domain.ProjectStatus, at time.Time) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Status = status
	p.UpdatedAt = at
	r.projects[id] = p
	return &p, nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *ProjectRepository) CountByStatus(_ context.Context) (map[domain.ProjectStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.ProjectStatus]int64)
	for _, p := range r.projects {
		out[p.Status]++
	}
	return out, nil
}

func (r *ProjectRepository) CountByType(_ context.Context) ([]domain.TypeCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, p := range r.projects {
		counts[p.ProjectType]++
	}
	out := make([]domain.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, domain.TypeCount{ProjectType: t, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.TypeCount) int {
		if a.Count != b.Count {
			return order(int(a.Count-b.Count), true)
		}
		return compareString(a.ProjectType, b.ProjectType)
	})
	return out, nil
}

func (r *ProjectRepository) FindUnowned(_ context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Project
	for _, p := range r.projects {
		if p.UserID == "" {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *ProjectRepository) AssignOwner(_ context.Context, id, userID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.UserID = userID
	p.SubmitterName = name
	r.projects[id] = p
	return nil
}
