package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mustardworks/portfolio-api/internal/api/handler"
	"github.com/mustardworks/portfolio-api/internal/api/middleware"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
	"github.com/mustardworks/portfolio-api/internal/core/service"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/db/memory"
)

// frozen pins every token and password change to the same instant.
type frozen time.Time

func (f frozen) Now() time.Time { return time.Time(f) }

type testServer struct {
	e     *echo.Echo
	users *memory.UserRepository
	auth  *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clk := frozen(time.Now().Truncate(time.Second))
	users := memory.NewUserRepository()
	projects := memory.NewProjectRepository()
	gallery := memory.NewGalleryRepository()

	tokens := service.NewTokenService("router-test-secret", time.Hour).WithClock(clk.Now)
	auth := service.NewAuthService(users, tokens, service.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop()).WithClock(clk.Now)

	e := NewRouter(Deps{
		Logger:   zerolog.Nop(),
		Tokens:   tokens,
		Users:    users,
		Auth:     auth,
		UserSvc:  service.NewUserService(users),
		Projects: service.NewProjectService(projects, zerolog.Nop()),
		Gallery:  service.NewGalleryService(gallery, zerolog.Nop()),
		Stats:    service.NewStatsService(projects, users),
		Cookie:   handler.CookieConfig{ExpiresDays: 7, RememberDays: 30},
	})
	return &testServer{e: e, users: users, auth: auth}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid json %q", method, path, rec.Body.String())
	}
	return rec.Code, env
}

func userID(t *testing.T, env envelope) string {
	t.Helper()
	var data struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.User.ID == "" {
		t.Fatalf("no user in %s", env.Data)
	}
	return data.User.ID
}

func (s *testServer) register(t *testing.T, email string) (token, id string) {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/auth/register", "",
		`{"firstName":"Ada","lastName":"Lovelace","email":"`+email+`","password":"secret1","confirmPassword":"secret1"}`)
	if code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, code, env.Message)
	}
	return env.Token, userID(t, env)
}

func (s *testServer) admin(t *testing.T) string {
	t.Helper()
	if _, _, err := s.auth.EnsureAdmin(context.Background(), ports.AdminInput{
		FirstName: "Root", LastName: "Admin", Email: "root@example.com", Password: "admin-pass",
	}); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	code, env := s.do(t, http.MethodPost, "/api/auth/admin/login", "", `{"email":"root@example.com","password":"admin-pass"}`)
	if code != http.StatusOK {
		t.Fatalf("admin login: %d %s", code, env.Message)
	}
	return env.Token
}

func TestRouter_RegisterThenLogin(t *testing.T) {
	s := newTestServer(t)
	_, id := s.register(t, "ada@example.com")

	code, env := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"ADA@example.com","password":"secret1"}`)
	if code != http.StatusOK {
		t.Fatalf("login: %d %s", code, env.Message)
	}
	if got := userID(t, env); got != id {
		t.Fatalf("login returned %s, registered %s", got, id)
	}

	code, env = s.do(t, http.MethodGet, "/api/auth/me", env.Token, "")
	if code != http.StatusOK || userID(t, env) != id {
		t.Fatalf("me: %d %s", code, env.Message)
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com")

	code, env := s.do(t, http.MethodPost, "/api/auth/register", "",
		`{"firstName":"Ada","lastName":"Again","email":" Ada@Example.com ","password":"secret1","confirmPassword":"secret1"}`)
	if code != http.StatusBadRequest || env.Message != "User already exists with this email" {
		t.Fatalf("expected duplicate rejection, got %d %q", code, env.Message)
	}
	if n := s.users.Count(); n != 1 {
		t.Fatalf("expected 1 stored user, got %d", n)
	}
}

func TestRouter_LoginFailuresLookAlike(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@example.com")

	_, wrongPass := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"ada@example.com","password":"nope12"}`)
	_, noUser := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"ghost@example.com","password":"nope12"}`)
	code, notAdmin := s.do(t, http.MethodPost, "/api/auth/admin/login", "", `{"email":"ada@example.com","password":"secret1"}`)

	if code != http.StatusUnauthorized {
		t.Fatalf("non-admin admin login: expected 401, got %d", code)
	}
	if wrongPass.Message != noUser.Message || noUser.Message != notAdmin.Message {
		t.Fatalf("messages differ: %q %q %q", wrongPass.Message, noUser.Message, notAdmin.Message)
	}
}

// The clock never moves here: the old and new tokens share an iat second.
func TestRouter_PasswordChangeRevokesOldTokens(t *testing.T) {
	s := newTestServer(t)
	oldToken, _ := s.register(t, "ada@example.com")

	code, env := s.do(t, http.MethodPatch, "/api/auth/update-password", oldToken,
		`{"currentPassword":"secret1","newPassword":"secret2"}`)
	if code != http.StatusOK {
		t.Fatalf("update password: %d %s", code, env.Message)
	}
	newToken := env.Token

	code, env = s.do(t, http.MethodGet, "/api/auth/me", oldToken, "")
	if code != http.StatusUnauthorized || env.Message != "User recently changed password! Please log in again." {
		t.Fatalf("old token: expected 401, got %d %q", code, env.Message)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/auth/me", newToken, ""); code != http.StatusOK {
		t.Fatalf("new token: expected 200, got %d", code)
	}

	code, env = s.do(t, http.MethodPatch, "/api/auth/update-password", newToken,
		`{"currentPassword":"wrong1","newPassword":"secret3"}`)
	if code != http.StatusUnauthorized || env.Message != "Your current password is incorrect" {
		t.Fatalf("wrong current password: %d %q", code, env.Message)
	}

	code, env = s.do(t, http.MethodPatch, "/api/auth/update-password", newToken,
		`{"currentPassword":"secret2","newPassword":"secret3"}`)
	if code != http.StatusOK {
		t.Fatalf("second update: %d %s", code, env.Message)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/auth/me", newToken, ""); code != http.StatusUnauthorized {
		t.Fatalf("token from the first change: expected 401, got %d", code)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/auth/me", env.Token, ""); code != http.StatusOK {
		t.Fatalf("latest token: expected 200, got %d", code)
	}
}

func TestRouter_AdminTokenValidRightAfterSeed(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "root@example.com")
	token := s.admin(t)

	if code, env := s.do(t, http.MethodGet, "/api/auth/me", token, ""); code != http.StatusOK {
		t.Fatalf("admin token minted in the promotion second: %d %s", code, env.Message)
	}
}

func TestRouter_AuthTransports(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "ada@example.com")

	for name, set := range map[string]func(*http.Request){
		"cookie": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token}) },
		"header": func(r *http.Request) { r.Header.Set(middleware.HeaderAuthToken, token) },
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		set(req)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, rec.Code)
		}
	}

	code, env := s.do(t, http.MethodGet, "/api/auth/me", "", "")
	if code != http.StatusUnauthorized || env.Message != "You are not logged in! Please log in to get access." {
		t.Fatalf("anonymous: %d %q", code, env.Message)
	}
	code, _ = s.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", code)
	}
}

func TestRouter_AdminRoutes(t *testing.T) {
	s := newTestServer(t)
	userToken, _ := s.register(t, "ada@example.com")
	adminToken := s.admin(t)

	for _, path := range []string{"/api/users", "/api/projects", "/api/stats/dashboard", "/api/gallery/admin/all"} {
		if code, env := s.do(t, http.MethodGet, path, userToken, ""); code != http.StatusForbidden {
			t.Fatalf("%s as user: expected 403, got %d %q", path, code, env.Message)
		}
		if code, env := s.do(t, http.MethodGet, path, adminToken, ""); code != http.StatusOK {
			t.Fatalf("%s as admin: expected 200, got %d %q", path, code, env.Message)
		}
	}
}

func TestRouter_ProjectVisibility(t *testing.T) {
	s := newTestServer(t)
	ownerToken, _ := s.register(t, "owner@example.com")
	strangerToken, _ := s.register(t, "stranger@example.com")
	adminToken := s.admin(t)

	code, env := s.do(t, http.MethodPost, "/api/projects/submit", ownerToken,
		`{"projectType":"Machine Learning","budget":"1000-5000","description":"Defect detection"}`)
	if code != http.StatusCreated {
		t.Fatalf("submit: %d %s", code, env.Message)
	}
	var data struct {
		Project struct {
			ID          string `json:"id"`
			ProjectType string `json:"projectType"`
		} `json:"project"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if data.Project.ProjectType != "ai" {
		t.Fatalf("expected ai, got %q", data.Project.ProjectType)
	}
	path := "/api/projects/" + data.Project.ID

	if code, _ := s.do(t, http.MethodGet, path, ownerToken, ""); code != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d", code)
	}
	if code, _ := s.do(t, http.MethodGet, path, adminToken, ""); code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", code)
	}
	if code, _ := s.do(t, http.MethodGet, path, strangerToken, ""); code != http.StatusForbidden {
		t.Fatalf("stranger: expected 403, got %d", code)
	}
	if code, _ := s.do(t, http.MethodPatch, path+"/status", ownerToken, `{"status":"approved"}`); code != http.StatusForbidden {
		t.Fatalf("owner status change: expected 403, got %d", code)
	}
	if code, _ := s.do(t, http.MethodPatch, path+"/status", adminToken, `{"status":"approved"}`); code != http.StatusOK {
		t.Fatalf("admin status change: expected 200, got %d", code)
	}
	if code, _ := s.do(t, http.MethodDelete, path, adminToken, ""); code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d", code)
	}
	if code, env := s.do(t, http.MethodGet, path, adminToken, ""); code != http.StatusNotFound || env.Message != "Project not found" {
		t.Fatalf("deleted project: %d %q", code, env.Message)
	}
}

func TestRouter_GalleryVisibility(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.admin(t)

	for _, body := range []string{
		`{"title":"Smart meter","description":"LoRa metering","category":"IoT","image":"https://img.example.com/1.jpg"}`,
		`{"title":"Prototype","description":"Not public yet","category":"vlsi","image":"https://img.example.com/2.jpg","isActive":false}`,
	} {
		if code, env := s.do(t, http.MethodPost, "/api/gallery", adminToken, body); code != http.StatusCreated {
			t.Fatalf("create: %d %s", code, env.Message)
		}
	}

	total := func(token string) int64 {
		t.Helper()
		code, env := s.do(t, http.MethodGet, "/api/gallery", token, "")
		if code != http.StatusOK {
			t.Fatalf("list: %d %s", code, env.Message)
		}
		var data struct {
			Pagination struct {
				TotalItems int64 `json:"totalItems"`
			} `json:"pagination"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return data.Pagination.TotalItems
	}

	if n := total(""); n != 1 {
		t.Fatalf("anonymous: expected 1 item, got %d", n)
	}
	if n := total("expired-or-garbage"); n != 1 {
		t.Fatalf("bad token on a public route is ignored: got %d", n)
	}
	if n := total(adminToken); n != 2 {
		t.Fatalf("admin: expected 2 items, got %d", n)
	}

	code, env := s.do(t, http.MethodGet, "/api/gallery/categories", "", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"iot"`) {
		t.Fatalf("categories: %d %s", code, env.Data)
	}

	code, env = s.do(t, http.MethodPost, "/api/gallery/images", adminToken, "")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("uploads without storage: expected 503, got %d %q", code, env.Message)
	}
}

func TestRouter_NotFoundAndHealth(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/nope", "", "")
	if code != http.StatusNotFound || env.Message != "Route /api/nope not found" {
		t.Fatalf("unknown route: %d %q", code, env.Message)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("every response carries a request id")
	}
}
