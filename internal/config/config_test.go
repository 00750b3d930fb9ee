package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORTAL_PORT", "DEFAULT_PAGE_SIZE", "BACKEND_BASE_URL",
		"BACKEND_TIMEOUT_SECONDS", "SESSION_STORE", "SESSION_TTL_HOURS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", cfg.Server.DefaultPageSize)
	}
	if cfg.Backend.BaseURL != "https://localhost:7176" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Store = %q, want memory", cfg.Session.Store)
	}
	if cfg.Session.TTLHours != 12 {
		t.Errorf("TTLHours = %d, want 12", cfg.Session.TTLHours)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORTAL_PORT", "9090")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("BACKEND_BASE_URL", "http://api.internal:8000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Session.Store != "redis" {
		t.Errorf("Store = %q, want redis", cfg.Session.Store)
	}
	if cfg.Backend.BaseURL != "http://api.internal:8000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad port", key: "PORTAL_PORT", value: "not-a-port"},
		{name: "bad page size", key: "DEFAULT_PAGE_SIZE", value: "ten"},
		{name: "unknown store", key: "SESSION_STORE", value: "etcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
