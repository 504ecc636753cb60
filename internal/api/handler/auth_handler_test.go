package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/api/middleware"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn      func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	adminLoginFn func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	updateFn     func(ctx context.Context, userID, current, next string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.adminLoginFn(ctx, email, password)
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, userID, current, next string) (*ports.AuthResult, error) {
	return s.updateFn(ctx, userID, current, next)
}

var testCookie = CookieConfig{ExpiresDays: 7, RememberDays: 30}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", middleware.CookieName)
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Email != "ada@example.com" || in.FirstName != "Ada" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "tok",
				User:  &domain.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: in.Email, Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/register",
		`{"firstName":" Ada ","lastName":"Lovelace","email":"ADA@example.com","password":"secret1","confirmPassword":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["success"] != true || resp["token"] != "tok" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user := resp["data"].(map[string]any)["user"].(map[string]any)
	if user["name"] != "Ada Lovelace" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialised")
	}

	cookie := sessionCookie(t, rec)
	if cookie.Value != "tok" || !cookie.HttpOnly || cookie.MaxAge != 7*24*60*60 {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"mismatch", `{"firstName":"A","lastName":"B","email":"a@example.com","password":"secret1","confirmPassword":"secret2"}`, "Passwords do not match"},
		{"short", `{"firstName":"A","lastName":"B","email":"a@example.com","password":"abc","confirmPassword":"abc"}`, "password must be at least 6 characters"},
		{"email", `{"firstName":"A","lastName":"B","email":"nope","password":"secret1","confirmPassword":"secret1"}`, "Please provide a valid email"},
		{"missing", `{"lastName":"B","email":"a@example.com","password":"secret1","confirmPassword":"secret1"}`, "firstName is required"},
		{"malformed", `{"firstName":`, "Invalid request payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
				t.Fatalf("service must not be called")
				return nil, nil
			}}
			c, _ := jsonRequest(e, http.MethodPost, "/api/auth/register", tc.body)

			he := httpError(t, NewAuthHandler(stub, testCookie).Register(c))
			if he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", he.Code)
			}
			if msg, _ := he.Message.(string); !strings.Contains(msg, tc.want) {
				t.Fatalf("expected %q in %q", tc.want, msg)
			}
		})
	}
}

func TestAuthHandler_Login_RememberMe(t *testing.T) {
	stub := &stubAuthService{loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
		return &ports.AuthResult{Token: "tok", User: &domain.User{ID: "u1", Email: email, Role: domain.RoleUser}}, nil
	}}
	h := NewAuthHandler(stub, testCookie)

	for remember, days := range map[bool]int{false: 7, true: 30} {
		e := newEcho()
		body := `{"email":"a@example.com","password":"secret1","rememberMe":false}`
		if remember {
			body = `{"email":"a@example.com","password":"secret1","rememberMe":true}`
		}
		c, rec := jsonRequest(e, http.MethodPost, "/api/auth/login", body)
		if err := h.Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if got := sessionCookie(t, rec).MaxAge; got != days*24*60*60 {
			t.Fatalf("rememberMe=%v: expected %d days, got MaxAge %d", remember, days, got)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
		return nil, domain.ErrInvalidCredentials
	}}
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrong"}`)

	if err := NewAuthHandler(stub, testCookie).Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on a failed login")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/logout", "")
	if err := NewAuthHandler(&stubAuthService{}, testCookie).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cookie := sessionCookie(t, rec); cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected an expired empty cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookie)

	c, _ := jsonRequest(e, http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); err != domain.ErrNotLoggedIn {
		t.Fatalf("expected ErrNotLoggedIn without a user, got %v", err)
	}

	c, rec := jsonRequest(e, http.MethodGet, "/api/auth/me", "")
	middleware.SetUser(c, &domain.User{ID: "u1", FirstName: "Ada", Email: "ada@example.com", Role: domain.RoleAdmin})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	user := decode(t, rec)["data"].(map[string]any)["user"].(map[string]any)
	if user["id"] != "u1" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{updateFn: func(ctx context.Context, userID, current, next string) (*ports.AuthResult, error) {
		if userID != "u1" || current != "old-pass" || next != "new-pass" {
			t.Fatalf("unexpected args: %s %s %s", userID, current, next)
		}
		return &ports.AuthResult{Token: "fresh", User: &domain.User{ID: userID}}, nil
	}}
	c, rec := jsonRequest(e, http.MethodPatch, "/api/auth/update-password", `{"currentPassword":"old-pass","newPassword":"new-pass"}`)
	middleware.SetUser(c, &domain.User{ID: "u1"})

	if err := NewAuthHandler(stub, testCookie).UpdatePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["token"] != "fresh" || sessionCookie(t, rec).Value != "fresh" {
		t.Fatalf("expected the fresh token in body and cookie")
	}
}
