package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/api/middleware"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// currentUser returns the user resolved by the auth middleware. Handlers
// mounted behind Authenticator.Required can rely on it being present.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrNotLoggedIn
	}
	return u, nil
}

// isAdmin reports whether an optional-auth request comes from an admin.
func isAdmin(c echo.Context) bool {
	u, ok := middleware.CurrentUser(c)
	return ok && u.IsAdmin()
}
