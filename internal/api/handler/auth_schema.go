package handler

import (
	"strings"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/normalize"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
type registerRequest struct {
	FirstName       string `json:"firstName"       validate:"required,max=50"`
	LastName        string `json:"lastName"        validate:"required,max=50"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (r *registerRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = normalize.Email(r.Email)
}

type loginRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

func (r *loginRequest) Normalize() {
	r.Email = normalize.Email(r.Email)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// userView is the public representation of an account.
type userView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserView(u *domain.User) userView {
	return userView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.Name(),
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type userData struct {
	User userView `json:"user"`
}

type usersData struct {
	Users      []userView `json:"users"`
	Pagination pagination `json:"pagination"`
}
