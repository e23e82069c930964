package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the funnel service.
type Config struct {
	BindAddr                 string
	MetricsNamespace         string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration

	AllowAnyOrigin bool

	// BrainMode selects the backend adapter: auto, http, or mock.
	BrainMode    string
	BrainBaseURL string
	BrainTimeout time.Duration

	// DatabaseURL enables the postgres-backed CTA registry when set.
	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                 envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:         envOrDefault("APP_METRICS_NAMESPACE", "advansells"),
		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 10 * time.Minute,
		AllowAnyOrigin:           false,
		BrainMode:                envOrDefault("BRAIN_MODE", "auto"),
		BrainBaseURL:             trimmedEnv("BRAIN_BASE_URL"),
		BrainTimeout:             60 * time.Second,
		DatabaseURL:              trimmedEnv("DATABASE_URL"),
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.BrainTimeout, err = durationFromEnv("BRAIN_TIMEOUT", cfg.BrainTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.BrainTimeout <= 0 {
		return Config{}, fmt.Errorf("BRAIN_TIMEOUT must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.BrainMode)) {
	case "auto", "http", "mock":
	default:
		return Config{}, fmt.Errorf("invalid BRAIN_MODE: %q (expected auto|http|mock)", cfg.BrainMode)
	}
	if strings.EqualFold(cfg.BrainMode, "http") && cfg.BrainBaseURL == "" {
		return Config{}, fmt.Errorf("BRAIN_BASE_URL is required when BRAIN_MODE=http")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
