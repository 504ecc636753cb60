package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/api/metrics"
	"github.com/mustardworks/portfolio-api/internal/api/middleware"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

// CookieConfig controls the session cookie set next to the token in the body.
type CookieConfig struct {
	ExpiresDays  int
	RememberDays int
	Secure       bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  response{data=userData}
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return h.session(c, http.StatusCreated, "User registered successfully", res, false)
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response{data=userData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	recordLogin("user", err)
	if err != nil {
		return err
	}

	return h.session(c, http.StatusOK, "Logged in successfully", res, req.RememberMe)
}

// AdminLogin is Login for the admin console. Non-admin accounts are refused
// with the same message as a wrong password.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response{data=userData}
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	recordLogin("admin", err)
	if err != nil {
		return err
	}

	return h.session(c, http.StatusOK, "Admin logged in successfully", res, req.RememberMe)
}

// Logout clears the session cookie. Bearer tokens held by the client stay
// valid until they expire.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return success(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response{data=userData}
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "User retrieved successfully", userData{User: newUserView(user)})
}

// UpdatePassword changes the caller's password and returns a fresh token.
// Every token issued before the change is rejected from then on.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  response{data=userData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/update-password [patch]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.UpdatePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}

	return h.session(c, http.StatusOK, "Password updated successfully", res, false)
}

func (h *AuthHandler) session(c echo.Context, status int, message string, res *ports.AuthResult, remember bool) error {
	days := h.cookie.ExpiresDays
	if remember {
		days = h.cookie.RememberDays
	}
	maxAge := days * 24 * 60 * 60

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(maxAge) * time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(status, response{
		Success: true,
		Message: message,
		Token:   res.Token,
		Data:    userData{User: newUserView(res.User)},
	})
}

func recordLogin(kind string, err error) {
	outcome := "success"
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		outcome = "invalid_credentials"
	case err != nil:
		outcome = "error"
	}
	metrics.LoginAttemptsTotal.WithLabelValues(kind, outcome).Inc()
}
