package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

const internalErrorMessage = "Something went wrong. Please try again later."

// errorResponse is the failure envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorMapping struct {
	err     error
	code    int
	message string
}

// domainErrors is matched in order with errors.Is.
var domainErrors = []errorMapping{
	{domain.ErrNotLoggedIn, http.StatusUnauthorized, "You are not logged in! Please log in to get access."},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "Your token has expired. Please log in again."},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, "Invalid token. Please log in again."},
	{domain.ErrUserGone, http.StatusUnauthorized, "The user belonging to this token no longer exists."},
	{domain.ErrPasswordChanged, http.StatusUnauthorized, "User recently changed password! Please log in again."},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect email or password"},
	{domain.ErrIncorrectPassword, http.StatusUnauthorized, "Your current password is incorrect"},
	{domain.ErrForbidden, http.StatusForbidden, "You do not have permission to perform this action"},
	{domain.ErrUserExists, http.StatusBadRequest, "User already exists with this email"},
	{domain.ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match"},
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid identifier"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "Invalid project status"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{domain.ErrGalleryItemNotFound, http.StatusNotFound, "Gallery item not found"},
	{domain.ErrStorageDisabled, http.StatusServiceUnavailable, "Image uploads are not available"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and client message.
//   - Keeps the status of echo's own errors (bind failures, 429, 413).
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return m.code, m.message
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusNotFound && errors.Is(err, echo.ErrNotFound):
			return he.Code, fmt.Sprintf("Route %s not found", c.Request().URL.Path)
		case he.Code >= http.StatusInternalServerError:
			logUnhandled(log, c, err)
			return he.Code, internalErrorMessage
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, internalErrorMessage
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
