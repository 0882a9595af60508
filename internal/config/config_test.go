package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FRIEND_REQUEST_LIMIT", "")
	t.Setenv("FRIEND_REQUEST_WINDOW", "")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")

	cfg := Load()
	if cfg.FriendRequestLimit != 3 {
		t.Fatalf("expected default limit 3, got %d", cfg.FriendRequestLimit)
	}
	if cfg.FriendRequestWindow != time.Minute {
		t.Fatalf("expected default window 1m, got %s", cfg.FriendRequestWindow)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %#v", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRIEND_REQUEST_LIMIT", "5")
	t.Setenv("FRIEND_REQUEST_WINDOW", "2m")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("ENV", "production")

	cfg := Load()
	if cfg.FriendRequestLimit != 5 {
		t.Fatalf("expected limit 5, got %d", cfg.FriendRequestLimit)
	}
	if cfg.FriendRequestWindow != 2*time.Minute {
		t.Fatalf("expected window 2m, got %s", cfg.FriendRequestWindow)
	}
	if cfg.MigrateOnStart {
		t.Fatal("expected migrations disabled")
	}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Fatal("expected production env")
	}
}

func TestParseIntRejectsNonPositive(t *testing.T) {
	if got := parseInt("0", 3); got != 3 {
		t.Fatalf("expected fallback 3, got %d", got)
	}
	if got := parseInt("abc", 3); got != 3 {
		t.Fatalf("expected fallback 3, got %d", got)
	}
}
