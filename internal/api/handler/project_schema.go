package handler

import (
	"strings"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/normalize"
)

type submitProjectRequest struct {
	ProjectType string `json:"projectType" validate:"required,projecttype"`
	Budget      string `json:"budget"      validate:"budget"`
	Timeline    string `json:"timeline"    validate:"timeline"`
	Description string `json:"description" validate:"required,max=2000"`
}

func (r *submitProjectRequest) Normalize() {
	r.ProjectType = normalize.ProjectType(r.ProjectType)
	r.Budget = normalize.Budget(r.Budget)
	r.Timeline = normalize.Timeline(r.Timeline)
	r.Description = strings.TrimSpace(r.Description)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,projectstatus"`
}

func (r *updateStatusRequest) Normalize() {
	r.Status = normalize.Status(r.Status)
}

type myProjectsQuery struct {
	Status string `query:"status" validate:"omitempty,projectstatus"`
	PageParams
}

func (q *myProjectsQuery) Normalize() {
	q.Status = normalize.Status(q.Status)
	q.PageParams.normalize()
}

type listProjectsQuery struct {
	Status      string `query:"status"      validate:"omitempty,projectstatus"`
	ProjectType string `query:"projectType" validate:"omitempty,projecttype"`
	PageParams
}

func (q *listProjectsQuery) Normalize() {
	q.Status = normalize.Status(q.Status)
	q.ProjectType = normalize.ProjectType(q.ProjectType)
	q.PageParams.normalize()
}

type projectData struct {
	Project *domain.Project `json:"project"`
}

type projectsData struct {
	Projects   []*domain.Project `json:"projects"`
	Pagination pagination        `json:"pagination"`
}
