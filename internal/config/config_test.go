package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("COOKIE_SECURE", "")

	cfg := Load()
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl: %v", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MailEnabled() {
		t.Fatal("mail should be disabled without credentials")
	}
	if cfg.CookieSecure {
		t.Fatal("cookies should not require https by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "yes")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("session ttl: %v", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SMTPPort != 2525 || !cfg.VerifyEmailDomain || !cfg.CookieSecure {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Addr() != ":9000" {
		t.Fatalf("addr: %s", cfg.Addr())
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if got := Load().SessionTTL; got != 24*time.Hour {
		t.Fatalf("got %v", got)
	}
}
