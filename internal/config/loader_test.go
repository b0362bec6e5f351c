package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Errorf("expected default addr :5000, got %q", cfg.Addr)
	}
	if cfg.Env != "production" {
		t.Errorf("expected default env production, got %q", cfg.Env)
	}
	if !cfg.RateLimitEnabled || cfg.RateCapacity != 100 || cfg.RateWindow != 15*time.Minute {
		t.Errorf("unexpected rate limit defaults: %+v", cfg)
	}
	if cfg.Development() {
		t.Error("production config must not report development mode")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONTACT_ADDR", ":9999")
	t.Setenv("CONTACT_ENV", "development")
	t.Setenv("CONTACT_SMTP_HOST", "smtp.example.com")
	t.Setenv("CONTACT_SMTP_SECURE", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("env override ignored for addr: %q", cfg.Addr)
	}
	if !cfg.Development() {
		t.Error("expected development mode")
	}
	if cfg.SMTPHost != "smtp.example.com" {
		t.Errorf("env override ignored for smtp host: %q", cfg.SMTPHost)
	}
	if cfg.SMTPSecure {
		t.Error("env override ignored for smtp secure flag")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":7070\"\nmail_from: noreply@site.test\nmail_to: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("config file ignored for addr: %q", cfg.Addr)
	}
	if cfg.NotifyTo() != "noreply@site.test" {
		t.Errorf("expected recipient fallback to sender, got %q", cfg.NotifyTo())
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
