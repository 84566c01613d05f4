package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want 587", cfg.SMTP.Port)
	}
	if cfg.SMTP.Host != "" {
		t.Errorf("SMTP.Host = %q, want empty (delivery disabled)", cfg.SMTP.Host)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_TLS", "true")
	t.Setenv("CORS_ORIGINS", "https://fmdb.example.com, https://www.fmdb.example.com")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("ENV=production not honored")
	}
	if cfg.SMTP.Port != 465 || !cfg.SMTP.UseTLS {
		t.Errorf("SMTP = %+v, want port 465 with TLS", cfg.SMTP)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want two entries", cfg.CORSOrigins)
	}
}

func TestBadEnvValuesFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("SMTP_TLS", "maybe")

	cfg := Load()

	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want default 587", cfg.SMTP.Port)
	}
	if cfg.SMTP.UseTLS {
		t.Error("unparsable SMTP_TLS should fall back to false")
	}
}
