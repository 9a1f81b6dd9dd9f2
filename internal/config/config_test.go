package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MODEL", "MODEL_TIMEOUT_MS", "MODEL_MAX_CONCURRENT", "TIMEZONE",
		"MONGODB_URI", "MONGODB_DB", "REDIS_ADDR",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URI", "FRONTEND_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Fatalf("Model = %q", cfg.Model)
	}
	if cfg.ModelTimeout != 5*time.Second {
		t.Fatalf("ModelTimeout = %v", cfg.ModelTimeout)
	}
	if cfg.ModelMaxConcurrent != 32 {
		t.Fatalf("ModelMaxConcurrent = %d", cfg.ModelMaxConcurrent)
	}
	if cfg.Timezone != "America/Argentina/Buenos_Aires" {
		t.Fatalf("Timezone = %q", cfg.Timezone)
	}
	if cfg.MongoURI != "" || cfg.RedisAddr != "" {
		t.Fatalf("store backends should default to empty: %q %q", cfg.MongoURI, cfg.RedisAddr)
	}
	if cfg.MongoDB != "cero" {
		t.Fatalf("MongoDB = %q", cfg.MongoDB)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MODEL_TIMEOUT_MS", "250")
	t.Setenv("MODEL_MAX_CONCURRENT", "4")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("FRONTEND_URL", "https://cero.example")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.ModelTimeout != 250*time.Millisecond {
		t.Fatalf("ModelTimeout = %v", cfg.ModelTimeout)
	}
	if cfg.ModelMaxConcurrent != 4 {
		t.Fatalf("ModelMaxConcurrent = %d", cfg.ModelMaxConcurrent)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.FrontendURL != "https://cero.example" {
		t.Fatalf("FrontendURL = %q", cfg.FrontendURL)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("MODEL_TIMEOUT_MS", "pronto")

	if got := Load().ModelTimeout; got != 5*time.Second {
		t.Fatalf("ModelTimeout = %v, want the default", got)
	}
}
