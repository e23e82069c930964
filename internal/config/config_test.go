package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BindAddr != ":8080" {
		t.Fatalf("bind addr = %s", cfg.BindAddr)
	}
	if cfg.MetricsNamespace != "advansells" {
		t.Fatalf("namespace = %s", cfg.MetricsNamespace)
	}
	if cfg.BrainMode != "auto" {
		t.Fatalf("brain mode = %s", cfg.BrainMode)
	}
	if cfg.BrainTimeout != 60*time.Second {
		t.Fatalf("brain timeout = %s", cfg.BrainTimeout)
	}
	if cfg.SessionInactivityTimeout != 10*time.Minute {
		t.Fatalf("inactivity timeout = %s", cfg.SessionInactivityTimeout)
	}
	if cfg.AllowAnyOrigin {
		t.Fatalf("origin check must default to strict")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_BIND_ADDR", ":9191")
	t.Setenv("BRAIN_MODE", "http")
	t.Setenv("BRAIN_BASE_URL", "http://localhost:5000")
	t.Setenv("BRAIN_TIMEOUT", "90s")
	t.Setenv("APP_SESSION_INACTIVITY_TIMEOUT", "30s")
	t.Setenv("APP_ALLOW_ANY_ORIGIN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BindAddr != ":9191" {
		t.Fatalf("bind addr = %s", cfg.BindAddr)
	}
	if cfg.BrainBaseURL != "http://localhost:5000" {
		t.Fatalf("base url = %s", cfg.BrainBaseURL)
	}
	if cfg.BrainTimeout != 90*time.Second {
		t.Fatalf("timeout = %s", cfg.BrainTimeout)
	}
	if cfg.SessionInactivityTimeout != 30*time.Second {
		t.Fatalf("inactivity = %s", cfg.SessionInactivityTimeout)
	}
	if !cfg.AllowAnyOrigin {
		t.Fatalf("origin override ignored")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "BRAIN_TIMEOUT", "soon"},
		{"negative timeout", "BRAIN_TIMEOUT", "-5s"},
		{"tiny inactivity", "APP_SESSION_INACTIVITY_TIMEOUT", "1s"},
		{"bad bool", "APP_ALLOW_ANY_ORIGIN", "maybe"},
		{"bad mode", "BRAIN_MODE", "psychic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoadHTTPModeNeedsBaseURL(t *testing.T) {
	t.Setenv("BRAIN_MODE", "http")
	t.Setenv("BRAIN_BASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("http mode without a base URL must fail")
	}
}
