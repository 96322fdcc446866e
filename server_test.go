package main

import (
	"testing"

	"github.com/gin-contrib/cors"
)

func TestCorsConfigProductionWithoutAllowlist(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	corsConfig := buildCorsConfig()
	if corsConfig.AllowAllOrigins {
		t.Fatal("production must not allow all origins")
	}
	if corsConfig.AllowOriginFunc == nil {
		t.Fatal("expected deny-all origin func when no allowlist is configured")
	}
	if corsConfig.AllowOriginFunc("https://example.com") {
		t.Fatal("origin func must deny every origin")
	}

	// cors.New panics on an empty allowlist; the deny-all func must not.
	handler := cors.New(corsConfig)
	if handler == nil {
		t.Fatal("expected a usable middleware handler")
	}
}

func TestCorsConfigProductionWithAllowlist(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	corsConfig := buildCorsConfig()
	if len(corsConfig.AllowOrigins) != 2 || corsConfig.AllowOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected allowlist: %v", corsConfig.AllowOrigins)
	}
	if corsConfig.AllowOriginFunc != nil {
		t.Fatal("origin func must not override an explicit allowlist")
	}
}

func TestCorsConfigDevelopmentAllowsAll(t *testing.T) {
	t.Setenv("GO_ENV", "development")

	corsConfig := buildCorsConfig()
	if !corsConfig.AllowAllOrigins {
		t.Fatal("expected all origins allowed outside production")
	}
}
