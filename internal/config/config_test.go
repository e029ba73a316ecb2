package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:              "8080",
		DataBackend:       BackendWebhook,
		TenantsWebhookURL: "https://hooks.example.com/tenants",
		IssuesWebhookURL:  "https://hooks.example.com/issues",
		FetchTimeout:      30 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid webhook backend config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid fixture backend config",
			mutate: func(c *Config) {
				c.DataBackend = BackendFixture
				c.FixtureDir = "./data"
				c.TenantsWebhookURL = ""
				c.IssuesWebhookURL = ""
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.DataBackend = "redis" },
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
		{
			name:        "webhook backend requires tenant URL",
			mutate:      func(c *Config) { c.TenantsWebhookURL = "" },
			wantErr:     true,
			errorString: "invalid tenants webhook URL",
		},
		{
			name:        "webhook URL scheme must be http(s)",
			mutate:      func(c *Config) { c.IssuesWebhookURL = "ftp://hooks.example.com/issues" },
			wantErr:     true,
			errorString: "invalid issues webhook URL",
		},
		{
			name: "fixture backend requires directory",
			mutate: func(c *Config) {
				c.DataBackend = BackendFixture
				c.FixtureDir = "  "
			},
			wantErr:     true,
			errorString: "fixture directory cannot be empty",
		},
		{
			name:        "negative fetch timeout",
			mutate:      func(c *Config) { c.FetchTimeout = -time.Second },
			wantErr:     true,
			errorString: "must not be negative",
		},
		{
			name:        "excessive fetch timeout",
			mutate:      func(c *Config) { c.FetchTimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 10 minutes",
		},
		{
			name:        "bad form URL",
			mutate:      func(c *Config) { c.RentFormURL = "not a url at all" },
			wantErr:     true,
			errorString: "invalid rent form URL",
		},
		{
			name:   "zero fetch timeout is allowed",
			mutate: func(c *Config) { c.FetchTimeout = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.DataBackend != BackendWebhook {
		t.Fatalf("default backend = %q", cfg.DataBackend)
	}
	if cfg.TenantsWebhookURL == "" || cfg.IssuesWebhookURL == "" {
		t.Fatal("default webhook URLs must be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATA_BACKEND", BackendFixture)
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("port override = %q", cfg.Port)
	}
	if cfg.DataBackend != BackendFixture {
		t.Fatalf("backend override = %q", cfg.DataBackend)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("timeout override = %v", cfg.FetchTimeout)
	}
}
