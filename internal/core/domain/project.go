package domain

import "time"

// ProjectStatus tracks a submission through the admin review workflow.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInReview   ProjectStatus = "in-review"
	StatusApproved   ProjectStatus = "approved"
	StatusRejected   ProjectStatus = "rejected"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
)

var ProjectStatuses = []ProjectStatus{
	StatusPending,
	StatusInReview,
	StatusApproved,
	StatusRejected,
	StatusInProgress,
	StatusCompleted,
}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Project types accepted on the intake form.
const (
	TypeHardware = "hardware"
	TypeEmbedded = "embedded"
	TypeIoT      = "iot"
	TypeEV       = "ev"
	TypeAI       = "ai"
	TypeVLSI     = "vlsi"
	TypeApp      = "app"
	TypeWeb      = "web"
	TypeLaptop   = "laptop"
	TypeOther    = "other"
)

var ProjectTypes = []string{
	TypeHardware, TypeEmbedded, TypeIoT, TypeEV, TypeAI,
	TypeVLSI, TypeApp, TypeWeb, TypeLaptop, TypeOther,
}

// Budget buckets. The empty string means "not specified".
var Budgets = []string{"<1000", "1000-5000", "5000-10000", "10000-25000", ">25000", ""}

// Timeline buckets. The empty string means "not specified".
var Timelines = []string{"<1month", "1-3months", "3-6months", "6-12months", ">12months", ""}

// Project is a client's intake submission. Submitter name and email are
// copied from the owning user at submission time.
type Project struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	SubmitterName  string        `json:"name"`
	SubmitterEmail string        `json:"email"`
	ProjectType    string        `json:"projectType"`
	Budget         string        `json:"budget"`
	Timeline       string        `json:"timeline"`
	Description    string        `json:"description"`
	Status         ProjectStatus `json:"status"`
	SubmittedAt    time.Time     `json:"submittedAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (p *Project) OwnedBy(userID string) bool {
	return p.UserID != "" && p.UserID == userID
}

// TypeCount is one row of the project-type distribution.
type TypeCount struct {
	ProjectType string `json:"projectType"`
	Count       int64  `json:"count"`
}

func ValidProjectType(s string) bool { return contains(ProjectTypes, s) }
func ValidBudget(s string) bool      { return contains(Budgets, s) }
func ValidTimeline(s string) bool    { return contains(Timelines, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
