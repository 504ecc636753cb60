package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/db/memory"
)

var issued = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// stubVerifier accepts tokens of the form "ok:<userID>".
type stubVerifier struct {
	err   error
	stamp *int64
}

func (s stubVerifier) Verify(token string) (*ports.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(token) < 3 || token[:3] != "ok:" {
		return nil, domain.ErrTokenInvalid
	}
	return &ports.TokenClaims{
		UserID:        token[3:],
		IssuedAt:      issued,
		ExpiresAt:     issued.Add(time.Hour),
		PasswordStamp: s.stamp,
	}, nil
}

func seedUser(t *testing.T, users *memory.UserRepository, email, role string) *domain.User {
	t.Helper()
	u := &domain.User{FirstName: "Ada", Email: email, Role: role, CreatedAt: issued}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func run(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*domain.User, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *domain.User
	err := mw(func(c echo.Context) error {
		seen, _ = CurrentUser(c)
		return nil
	})(c)
	return seen, err
}

func TestExtractToken_Order(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderAuthToken, "from-header")
	if got := ExtractToken(req); got != "from-header" {
		t.Fatalf("expected X-Auth-Token, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	if got := ExtractToken(req); got != "from-cookie" {
		t.Fatalf("cookie must win over X-Auth-Token, got %q", got)
	}

	req.Header.Set("Authorization", "Bearer from-bearer")
	if got := ExtractToken(req); got != "from-bearer" {
		t.Fatalf("bearer must win over cookie, got %q", got)
	}
}

func TestExtractToken_SkipsEmptyAndForeignSchemes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer   ")
	req.Header.Set(HeaderAuthToken, "fallback")
	if got := ExtractToken(req); got != "fallback" {
		t.Fatalf("empty bearer should fall through, got %q", got)
	}

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := ExtractToken(req); got != "fallback" {
		t.Fatalf("basic auth should be ignored, got %q", got)
	}

	if got := ExtractToken(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("expected no token, got %q", got)
	}
}

func TestRequired_AttachesUser(t *testing.T) {
	users := memory.NewUserRepository()
	u := seedUser(t, users, "ada@example.com", domain.RoleUser)
	auth := NewAuthenticator(stubVerifier{}, users, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ok:"+u.ID)

	seen, err := run(t, auth.Required(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == nil || seen.ID != u.ID {
		t.Fatalf("expected user %s on context, got %+v", u.ID, seen)
	}
}

func TestRequired_Rejections(t *testing.T) {
	users := memory.NewUserRepository()
	live := seedUser(t, users, "live@example.com", domain.RoleUser)
	gone := seedUser(t, users, "gone@example.com", domain.RoleUser)
	users.Delete(gone.ID)

	changed := seedUser(t, users, "changed@example.com", domain.RoleUser)
	if err := users.UpdatePassword(context.Background(), changed.ID, "h", issued.Add(time.Minute)); err != nil {
		t.Fatalf("update password: %v", err)
	}

	// Same second as issue: only the stamp can tell the tokens apart.
	sameSecond := seedUser(t, users, "same@example.com", domain.RoleUser)
	if err := users.UpdatePassword(context.Background(), sameSecond.ID, "h", issued.Add(300*time.Millisecond)); err != nil {
		t.Fatalf("update password: %v", err)
	}
	var neverChanged int64

	tests := []struct {
		name     string
		verifier stubVerifier
		token    string
		want     error
	}{
		{"no token", stubVerifier{}, "", domain.ErrNotLoggedIn},
		{"bad token", stubVerifier{}, "garbage", domain.ErrTokenInvalid},
		{"expired", stubVerifier{err: domain.ErrTokenExpired}, "ok:" + live.ID, domain.ErrTokenExpired},
		{"deleted user", stubVerifier{}, "ok:" + gone.ID, domain.ErrUserGone},
		{"malformed id", stubVerifier{}, "ok:not-an-id", domain.ErrUserGone},
		{"password changed", stubVerifier{}, "ok:" + changed.ID, domain.ErrPasswordChanged},
		{"password changed same second", stubVerifier{stamp: &neverChanged}, "ok:" + sameSecond.ID, domain.ErrPasswordChanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuthenticator(tt.verifier, users, zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set(HeaderAuthToken, tt.token)
			}
			seen, err := run(t, auth.Required(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if seen != nil {
				t.Fatalf("next must not run")
			}
		})
	}
}

func TestOptional_NeverRejects(t *testing.T) {
	users := memory.NewUserRepository()
	u := seedUser(t, users, "admin@example.com", domain.RoleAdmin)
	auth := NewAuthenticator(stubVerifier{}, users, zerolog.Nop())

	seen, err := run(t, auth.Optional(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || seen != nil {
		t.Fatalf("anonymous request: user=%v err=%v", seen, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderAuthToken, "garbage")
	seen, err = run(t, auth.Optional(), req)
	if err != nil || seen != nil {
		t.Fatalf("invalid token: user=%v err=%v", seen, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "ok:" + u.ID})
	seen, err = run(t, auth.Optional(), req)
	if err != nil || seen == nil || seen.ID != u.ID {
		t.Fatalf("valid token: user=%v err=%v", seen, err)
	}
}

func TestRequired_AcceptsCurrentStamp(t *testing.T) {
	users := memory.NewUserRepository()
	u := seedUser(t, users, "stamp@example.com", domain.RoleUser)
	changedAt := issued.Add(300 * time.Millisecond)
	if err := users.UpdatePassword(context.Background(), u.ID, "h", changedAt); err != nil {
		t.Fatalf("update password: %v", err)
	}
	current := changedAt.UnixMilli()
	auth := NewAuthenticator(stubVerifier{stamp: &current}, users, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ok:"+u.ID)
	seen, err := run(t, auth.Required(), req)
	if err != nil {
		t.Fatalf("token minted under the current password must pass: %v", err)
	}
	if seen == nil || seen.ID != u.ID {
		t.Fatalf("expected user %s on context", u.ID)
	}
}
