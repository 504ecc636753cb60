package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestReadiness_AllHealthy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	h := NewHealthHandler("api", "test", map[string]Check{"redis": RedisCheck(rdb)})
	rec := serve(t, h.Readiness)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Dependencies["redis"].Status != "ok" {
		t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	down := func(context.Context) error { return errors.New("connection refused") }
	h := NewHealthHandler("api", "test", map[string]Check{
		"mongodb": down,
		"redis":   func(context.Context) error { return nil },
	})
	rec := serve(t, h.Readiness)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "degraded" || resp.Dependencies["mongodb"].Error != "connection refused" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLivenessAndBanner(t *testing.T) {
	h := NewHealthHandler("MustardWorks API", "1.0.0", nil)
	if rec := serve(t, h.Liveness); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	rec := serve(t, h.Banner)
	var resp bannerResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Success || resp.Version != "1.0.0" {
		t.Fatalf("unexpected banner: %s", rec.Body.String())
	}
}
