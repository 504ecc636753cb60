package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService("secret", time.Hour).WithClock(clock.Now)

	token, err := svc.Issue(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected subject %q", claims.UserID)
	}
	if !claims.IssuedAt.Equal(clock.Now()) {
		t.Fatalf("iat = %v, want %v", claims.IssuedAt, clock.Now())
	}
	if !claims.ExpiresAt.Equal(clock.Now().Add(time.Hour)) {
		t.Fatalf("exp = %v, want %v", claims.ExpiresAt, clock.Now().Add(time.Hour))
	}
	if claims.PasswordStamp == nil || *claims.PasswordStamp != 0 {
		t.Fatalf("expected a zero password stamp, got %v", claims.PasswordStamp)
	}
}

func TestTokenService_CarriesPasswordStamp(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService("secret", time.Hour).WithClock(clock.Now)

	changed := time.Date(2026, 5, 4, 9, 59, 59, 123e6, time.UTC)
	token, err := svc.Issue(&domain.User{ID: "user-1", PasswordChangedAt: changed})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.PasswordStamp == nil || *claims.PasswordStamp != changed.UnixMilli() {
		t.Fatalf("stamp = %v, want %d", claims.PasswordStamp, changed.UnixMilli())
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService("secret", time.Hour).WithClock(clock.Now)
	token, err := svc.Issue(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(time.Hour - time.Second)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token one second before expiry must verify, got %v", err)
	}

	clock.Advance(time.Second)
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at exp, got %v", err)
	}
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService("secret", time.Hour).WithClock(clock.Now)

	other, _ := NewTokenService("other-secret", time.Hour).WithClock(clock.Now).Issue(&domain.User{ID: "user-1"})

	claims := jwt.MapClaims{
		"id":  "user-1",
		"iat": clock.Now().Unix(),
		"exp": clock.Now().Add(time.Hour).Unix(),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := map[string]string{
		"wrong secret":    other,
		"wrong algorithm": hs512,
		"unsigned":        none,
		"garbage":         "not.a.token",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestTokenService_MissingSubject(t *testing.T) {
	clock := newFakeClock()
	svc := NewTokenService("secret", time.Hour).WithClock(clock.Now)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": clock.Now().Unix(),
		"exp": clock.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_MissingSecret(t *testing.T) {
	svc := NewTokenService("", 0)
	if _, err := svc.Issue(&domain.User{ID: "user-1"}); !errors.Is(err, domain.ErrSigningKeyMissing) {
		t.Fatalf("issue: expected ErrSigningKeyMissing, got %v", err)
	}
	if _, err := svc.Verify("x.y.z"); !errors.Is(err, domain.ErrSigningKeyMissing) {
		t.Fatalf("verify: expected ErrSigningKeyMissing, got %v", err)
	}
	if svc.TTL() != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", svc.TTL())
	}
}
