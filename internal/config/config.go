package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Upstream backend names.
const (
	BackendWebhook = "webhook"
	BackendFixture = "fixture"
)

type Config struct {
	// HTTP Server
	Port string

	// Upstream webhook endpoints
	TenantsWebhookURL string
	IssuesWebhookURL  string

	// FetchTimeout bounds a single upstream request. Zero disables the
	// deadline and lets a fetch wait indefinitely.
	FetchTimeout time.Duration

	// Backend selection
	DataBackend string
	FixtureDir  string

	// External hosted forms, opened in a new tab for out-of-band entry.
	RentFormURL  string
	IssueFormURL string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		TenantsWebhookURL: getEnv("TENANTS_WEBHOOK_URL",
			"https://n8n.cloudboticsconsultancy.com/webhook/a0b65aad-f5d8-4848-a77c-dfc6f138d4a2"),
		IssuesWebhookURL: getEnv("ISSUES_WEBHOOK_URL",
			"https://n8n.cloudboticsconsultancy.com/webhook/a0b65aad-f5d8-484"),

		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

		DataBackend: getEnv("DATA_BACKEND", BackendWebhook),
		FixtureDir:  getEnv("FIXTURE_DIR", "./data"),

		RentFormURL:  getEnv("RENT_FORM_URL", ""),
		IssueFormURL: getEnv("ISSUE_FORM_URL", ""),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendWebhook:
		if err := validHTTPURL(c.TenantsWebhookURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid tenants webhook URL: %v", err))
		}
		if err := validHTTPURL(c.IssuesWebhookURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid issues webhook URL: %v", err))
		}
	case BackendFixture:
		if strings.TrimSpace(c.FixtureDir) == "" {
			errs = append(errs, "fixture directory cannot be empty when using fixture backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]",
			c.DataBackend, BackendWebhook, BackendFixture))
	}

	if c.FetchTimeout < 0 {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must not be negative", c.FetchTimeout))
	} else if c.FetchTimeout > 10*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must be at most 10 minutes", c.FetchTimeout))
	}

	for name, u := range map[string]string{
		"rent form URL":  c.RentFormURL,
		"issue form URL": c.IssueFormURL,
	} {
		if u == "" {
			continue
		}
		if err := validHTTPURL(u); err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func validHTTPURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme '%s' must be 'http' or 'https'", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in '%s'", raw)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
