package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// DefaultTokenTTL matches the cookie lifetime of a normal (non remember-me) login.
const DefaultTokenTTL = 7 * 24 * time.Hour

// tokenClaims binds a token to the password it was minted under through
// PasswordStamp (see domain.User.PasswordStamp).
type tokenClaims struct {
	UserID        string `json:"id"`
	PasswordStamp *int64 `json:"pwd,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for iat, exp and expiry checks.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(user *domain.User) (string, error) {
	if len(s.secret) == 0 {
		return "", domain.ErrSigningKeyMissing
	}

	now := s.now()
	stamp := user.PasswordStamp()
	claims := tokenClaims{
		UserID:        user.ID,
		PasswordStamp: &stamp,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm and expiry of raw. A token is
// expired from the instant now reaches its exp claim.
func (s *TokenService) Verify(raw string) (*ports.TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, domain.ErrSigningKeyMissing
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if claims.UserID == "" || claims.IssuedAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{
		UserID:        claims.UserID,
		IssuedAt:      claims.IssuedAt.Time,
		ExpiresAt:     claims.ExpiresAt.Time,
		PasswordStamp: claims.PasswordStamp,
	}, nil
}
