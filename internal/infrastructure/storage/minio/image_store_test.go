package minio

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key := objectKey("image/jpeg")
	if !strings.HasPrefix(key, "gallery/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}
	if key == objectKey("image/jpeg") {
		t.Fatalf("keys must be unique per upload")
	}
	for ct, ext := range map[string]string{"image/png": ".png", "image/gif": ".gif", "image/webp": ".webp"} {
		if k := objectKey(ct); !strings.HasSuffix(k, ext) {
			t.Fatalf("objectKey(%q) = %q, want suffix %q", ct, k, ext)
		}
	}
	if k := objectKey("text/html; charset=utf-8"); strings.Contains(k, ".") {
		t.Fatalf("unknown type must not get an extension, got %q", k)
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{Endpoint: "localhost:9000"}, "http://localhost:9000"},
		{Config{Endpoint: "s3.example.com", UseSSL: true}, "https://s3.example.com"},
		{Config{Endpoint: "minio:9000", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
	}
	for _, tt := range tests {
		if got := baseURL(tt.cfg); got != tt.want {
			t.Fatalf("baseURL(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
