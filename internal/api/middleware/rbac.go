package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mustardworks/portfolio-api/internal/api/metrics"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// RequireRole lets the request through only when the current user holds one
// of roles. It must be mounted after Authenticator.Required; running without
// a user panics.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				panic("middleware: RequireRole used without authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
