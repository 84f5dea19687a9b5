package config

import (
	"testing"
)

func TestLoadConfigDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	// No config file: defaults plus the env overrides.
	cfg, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Errorf("maxOpenConns = %d, want 50", cfg.Database.MaxOpenConns)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("jwt secret = %q, want env-secret", cfg.JWT.Secret)
	}
	if cfg.Server.Mode != "development" {
		t.Errorf("mode = %q, want the development default", cfg.Server.Mode)
	}
	if cfg.JWT.AccessTokenExpiration != "15m" {
		t.Errorf("access expiration = %q, want 15m", cfg.JWT.AccessTokenExpiration)
	}
}

func TestLoadConfigRejectsBadEnvValue(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "fifty")

	if _, err := LoadConfig("does-not-exist.yaml"); err == nil {
		t.Fatal("expected an error for a non-integer pool size")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig("does-not-exist.yaml"); err == nil {
		t.Fatal("expected an error when no JWT secret is configured")
	}
}

func TestRefreshSigningSecretFallback(t *testing.T) {
	cfg := &Config{}
	cfg.JWT.Secret = "only-secret"

	if got := cfg.RefreshSigningSecret(); got != "only-secret" {
		t.Errorf("RefreshSigningSecret = %q, want the access secret fallback", got)
	}

	cfg.JWT.RefreshSecret = "refresh-secret"
	if got := cfg.RefreshSigningSecret(); got != "refresh-secret" {
		t.Errorf("RefreshSigningSecret = %q, want refresh-secret", got)
	}
}
