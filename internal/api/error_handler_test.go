package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

func render(t *testing.T, method string, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/thing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if method != http.MethodHead {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
	}
	return rec, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	for _, m := range domainErrors {
		t.Run(m.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("while handling: %w", m.err)
			rec, body := render(t, http.MethodGet, wrapped)
			if rec.Code != m.code {
				t.Fatalf("expected %d, got %d", m.code, rec.Code)
			}
			if body.Success || body.Message != m.message {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestErrorHandler_HTTPErrors(t *testing.T) {
	rec, body := render(t, http.MethodPost, echo.NewHTTPError(http.StatusBadRequest, "email is required"))
	if rec.Code != http.StatusBadRequest || body.Message != "email is required" {
		t.Fatalf("validation errors keep their message: %d %+v", rec.Code, body)
	}

	rec, body = render(t, http.MethodGet, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound || body.Message != "Route /api/thing not found" {
		t.Fatalf("unexpected not-found rendering: %d %+v", rec.Code, body)
	}

	rec, body = render(t, http.MethodGet, echo.NewHTTPError(http.StatusBadGateway, "upstream said no"))
	if rec.Code != http.StatusBadGateway || body.Message != internalErrorMessage {
		t.Fatalf("5xx messages must not leak: %d %+v", rec.Code, body)
	}
}

func TestErrorHandler_Unexpected(t *testing.T) {
	rec, body := render(t, http.MethodGet, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError || body.Message != internalErrorMessage {
		t.Fatalf("unexpected rendering: %d %+v", rec.Code, body)
	}

	rec, _ = render(t, http.MethodHead, domain.ErrForbidden)
	if rec.Code != http.StatusForbidden || rec.Body.Len() != 0 {
		t.Fatalf("HEAD responses carry no body: %d %q", rec.Code, rec.Body.String())
	}
}
