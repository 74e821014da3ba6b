package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("SHARE_TOKEN_TTL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port default: %q", cfg.Port)
	}
	if cfg.ShareTokenTTL != 7*24*time.Hour {
		t.Fatalf("ttl default: %v", cfg.ShareTokenTTL)
	}
	if cfg.TokenSecret == "" {
		t.Fatal("token secret must never be empty")
	}
}

func TestLoadShareTokenTTL(t *testing.T) {
	t.Setenv("SHARE_TOKEN_TTL", "48h")
	if got := Load().ShareTokenTTL; got != 48*time.Hour {
		t.Fatalf("ttl: %v", got)
	}

	t.Setenv("SHARE_TOKEN_TTL", "not-a-duration")
	if got := Load().ShareTokenTTL; got != 7*24*time.Hour {
		t.Fatalf("invalid ttl must fall back to default, got %v", got)
	}
}
