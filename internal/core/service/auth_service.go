package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/normalize"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// passwordChangeSkew backdates passwordChangedAt for tokens verified by
// issued-at alone. Stamped tokens are revoked by the stamp changing.
const passwordChangeSkew = time.Second

// AuthService implements signup, login and the password lifecycle. All
// writes of a password go through createUser or updatePassword.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	hasher *PasswordHasher
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, hasher *PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for createdAt and passwordChangedAt.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalize.Email(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Role:      domain.RoleUser,
	}
	if err := s.createUser(ctx, user, in.Password); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

// AdminLogin is Login restricted to admins. Non-admins get the same error as
// a wrong password.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		s.logger.Warn().Str("user_id", user.ID).Msg("non-admin attempted admin login")
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(user)
}

// UpdatePassword replaces the password of userID after checking current and
// returns a fresh token. Tokens issued before the change stop working.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (*ports.AuthResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserGone
		}
		return nil, err
	}
	if !s.hasher.Matches(current, user.PasswordHash) {
		return nil, domain.ErrIncorrectPassword
	}
	if err := s.updatePassword(ctx, user, next); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password updated")
	return s.session(user)
}

// EnsureAdmin creates the admin account described by in, or promotes and
// resets the existing account with that email. It reports whether a new
// account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, in ports.AdminInput) (*domain.User, bool, error) {
	email := normalize.Email(in.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user := &domain.User{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Email:     email,
			Role:      domain.RoleAdmin,
		}
		if err := s.createUser(ctx, user, in.Password); err != nil {
			return nil, false, err
		}
		return user, true, nil
	case err != nil:
		return nil, false, err
	}

	// Hash before touching the account so a rejected password leaves it as is.
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, false, err
	}

	first, last := existing.FirstName, existing.LastName
	if v := strings.TrimSpace(in.FirstName); v != "" {
		first = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		last = v
	}
	if err := s.users.UpdateProfile(ctx, existing.ID, first, last, domain.RoleAdmin); err != nil {
		return nil, false, err
	}
	existing.FirstName, existing.LastName, existing.Role = first, last, domain.RoleAdmin

	if err := s.storePassword(ctx, existing, hash); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *AuthService) checkCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Matches(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// createUser is the only write path for new accounts: it hashes the
// password, normalises the email and stamps createdAt before persisting.
func (s *AuthService) createUser(ctx context.Context, user *domain.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.Email = normalize.Email(user.Email)
	user.PasswordHash = hash
	user.PasswordChangedAt = time.Time{}
	user.CreatedAt = s.now().UTC()
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	return s.users.Create(ctx, user)
}

// updatePassword and storePassword are the only write paths for password
// changes on existing accounts.
func (s *AuthService) updatePassword(ctx context.Context, user *domain.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.storePassword(ctx, user, hash)
}

func (s *AuthService) storePassword(ctx context.Context, user *domain.User, hash string) error {
	// Millisecond precision survives a round trip through BSON dates, so
	// the stamp read back from the store equals the one put in the token.
	// Stamps only move forward so an old stamp is never reissued.
	changedAt := s.now().UTC().Add(-passwordChangeSkew).Truncate(time.Millisecond)
	if !changedAt.After(user.PasswordChangedAt) {
		changedAt = user.PasswordChangedAt.Add(time.Millisecond)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
		return err
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = changedAt
	return nil
}

func (s *AuthService) session(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}
