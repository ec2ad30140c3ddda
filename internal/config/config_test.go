package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TIMEZONE", "Nowhere/Invalid")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "ninety")

	cfg := Load()

	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected default 2h ttl, got %s", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.NotificationRetentionDays != 90 {
		t.Fatalf("expected default retention of 90 days, got %d", cfg.NotificationRetentionDays)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", cfg.Location())
	}
}

func TestUsesRedisSessionsRequiresURL(t *testing.T) {
	cfg := &Config{SessionStore: "redis"}
	if cfg.UsesRedisSessions() {
		t.Fatal("redis store without url must fall back to postgres")
	}
	cfg.RedisURL = "redis://localhost:6379/0"
	if !cfg.UsesRedisSessions() {
		t.Fatal("expected redis sessions")
	}
}
