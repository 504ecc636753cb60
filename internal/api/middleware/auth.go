package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/api/metrics"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

const (
	// CookieName is the cookie the auth handlers set the session token in.
	CookieName      = "jwt"
	HeaderAuthToken = "X-Auth-Token"

	userKey = "user"
)

// UserFinder resolves the account named by a token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Authenticator turns a bearer token into the current user.
type Authenticator struct {
	tokens ports.TokenVerifier
	users  UserFinder
	logger zerolog.Logger
}

func NewAuthenticator(tokens ports.TokenVerifier, users UserFinder, logger zerolog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Required rejects the request with 401 unless it carries a valid token for
// an existing user whose password has not changed since the token was issued.
func (a *Authenticator) Required() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := a.authenticate(c)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}
			SetUser(c, user)
			return next(c)
		}
	}
}

// Optional attaches the user when the request carries a valid token and
// lets anonymous requests through untouched.
func (a *Authenticator) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ExtractToken(c.Request()) == "" {
				return next(c)
			}
			user, err := a.authenticate(c)
			if err != nil {
				a.logger.Debug().Err(err).Msg("ignoring token on public route")
				return next(c)
			}
			SetUser(c, user)
			return next(c)
		}
	}
}

func (a *Authenticator) authenticate(c echo.Context) (*domain.User, error) {
	raw := ExtractToken(c.Request())
	if raw == "" {
		return nil, domain.ErrNotLoggedIn
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	user, err := a.users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUserGone
		}
		return nil, err
	}

	if user.TokenStale(claims.IssuedAt, claims.PasswordStamp) {
		return nil, domain.ErrPasswordChanged
	}
	return user, nil
}

// ExtractToken returns the first non-empty token from, in order, the
// Authorization bearer header, the jwt cookie and the X-Auth-Token header.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}
	if ck, err := r.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	return strings.TrimSpace(r.Header.Get(HeaderAuthToken))
}

func SetUser(c echo.Context, u *domain.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the user attached by the auth middleware, if any.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(userKey).(*domain.User)
	return u, ok && u != nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "missing_token"
	case errors.Is(err, domain.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(err, domain.ErrUserGone):
		return "user_gone"
	case errors.Is(err, domain.ErrPasswordChanged):
		return "password_changed"
	default:
		return "error"
	}
}
