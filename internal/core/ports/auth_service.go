package ports

import (
	"context"
	"time"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// TokenClaims is what a verified token asserts.
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// PasswordStamp is nil for tokens minted without one.
	PasswordStamp *int64
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// RegisterInput is the validated signup payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AdminInput describes the account provisioned by the seed tool.
type AdminInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is a freshly issued token and the account it belongs to.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	UpdatePassword(ctx context.Context, userID, current, next string) (*AuthResult, error)
}

type UserService interface {
	ListUsers(ctx context.Context, filter UserFilter) (Page[*domain.User], error)
}
