package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("JWT_EXPIRES_IN", "")
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("SUMMARY_CACHE_TTL", "")
		t.Setenv("IMPORT_MAX_BYTES", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("port = %q, want 8080", cfg.Port)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("jwt expiry = %s, want 24h", cfg.JWTExpirationDur)
		}
		if cfg.RedisAddr != "" {
			t.Errorf("expected redis disabled by default, got %q", cfg.RedisAddr)
		}
		if cfg.SummaryCacheTTL != 5*time.Minute {
			t.Errorf("cache ttl = %s, want 5m", cfg.SummaryCacheTTL)
		}
		if cfg.ImportMaxBytes != 10<<20 {
			t.Errorf("import max bytes = %d, want %d", cfg.ImportMaxBytes, 10<<20)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_EXPIRES_IN", "1h")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("SUMMARY_CACHE_TTL", "30s")
		t.Setenv("IMPORT_MAX_BYTES", "2048")
		t.Setenv("STATEMENT_FORMATS_FILE", "/etc/fintrack/banks.yaml")

		cfg, _ := Load()
		if cfg.Port != "9090" {
			t.Errorf("port = %q, want 9090", cfg.Port)
		}
		if cfg.JWTExpirationDur != time.Hour {
			t.Errorf("jwt expiry = %s, want 1h", cfg.JWTExpirationDur)
		}
		if cfg.RedisAddr != "localhost:6379" {
			t.Errorf("redis addr = %q", cfg.RedisAddr)
		}
		if cfg.SummaryCacheTTL != 30*time.Second {
			t.Errorf("cache ttl = %s, want 30s", cfg.SummaryCacheTTL)
		}
		if cfg.ImportMaxBytes != 2048 {
			t.Errorf("import max bytes = %d, want 2048", cfg.ImportMaxBytes)
		}
		if cfg.StatementFormatsFile != "/etc/fintrack/banks.yaml" {
			t.Errorf("formats file = %q", cfg.StatementFormatsFile)
		}
	})

	t.Run("invalid_values_fall_back", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "tomorrow")
		t.Setenv("IMPORT_MAX_BYTES", "lots")

		cfg, _ := Load()
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("jwt expiry = %s, want 24h", cfg.JWTExpirationDur)
		}
		if cfg.ImportMaxBytes != 10<<20 {
			t.Errorf("import max bytes = %d, want default", cfg.ImportMaxBytes)
		}
	})
}
