package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd to be true")
	}
	if cfg.Storage.Backend != StorageBackendDB {
		t.Fatalf("expected default db backend, got %q", cfg.Storage.Backend)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("expected sqlite default driver, got %q", cfg.DB.Driver)
	}
	if got := cfg.Catalog.Timeout; got != 10*time.Second {
		t.Fatalf("expected catalog timeout 10s, got %v", got)
	}
	if cfg.JWT.ExpirationMinutes != 1440 {
		t.Fatalf("unexpected jwt expiration %d", cfg.JWT.ExpirationMinutes)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("SWIFTCART_STORAGE_BACKEND", "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown backend to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv("SWIFTCART_JWT_SECRET", "test-secret")
}
