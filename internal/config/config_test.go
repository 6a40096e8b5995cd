package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SendBufferSize != 64 {
		t.Fatalf("expected default send buffer 64, got %d", cfg.SendBufferSize)
	}
	if cfg.IdleTimeout != 0 {
		t.Fatalf("expected idle timeout disabled by default, got %v", cfg.IdleTimeout)
	}
	if cfg.ChaptersCollection != "books_chapter" {
		t.Fatalf("unexpected chapters collection: %s", cfg.ChaptersCollection)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SEND_BUFFER_SIZE", "8")
	t.Setenv("IDLE_TIMEOUT_SECONDS", "30")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Fatalf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.SendBufferSize != 8 {
		t.Fatalf("expected send buffer 8, got %d", cfg.SendBufferSize)
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Fatalf("expected 30s idle timeout, got %v", cfg.IdleTimeout)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("SEND_BUFFER_SIZE", "not-a-number")

	cfg := Load()
	if cfg.SendBufferSize != 64 {
		t.Fatalf("expected fallback to default, got %d", cfg.SendBufferSize)
	}
}
