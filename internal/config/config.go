// Package config loads the process configuration from the environment,
// Cloud Run style: every knob has a default so a bare container boots.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Model
	Model              string
	ModelTimeout       time.Duration
	ModelMaxConcurrent int

	// Assistant locale
	Timezone string

	// Token store backends. MongoURI wins over RedisAddr; with neither
	// set the in-memory store is used.
	MongoURI  string
	MongoDB   string
	RedisAddr string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	FrontendURL string
}

func Load() Config {
	return Config{
		Port:               envOrDefault("PORT", "8080"),
		Model:              envOrDefault("MODEL", "gemini-2.0-flash"),
		ModelTimeout:       time.Duration(envIntOrDefault("MODEL_TIMEOUT_MS", 5000)) * time.Millisecond,
		ModelMaxConcurrent: envIntOrDefault("MODEL_MAX_CONCURRENT", 32),
		Timezone:           envOrDefault("TIMEZONE", "America/Argentina/Buenos_Aires"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDB:            envOrDefault("MONGODB_DB", "cero"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  envOrDefault("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/auth/google/callback"),
		FrontendURL:        envOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
