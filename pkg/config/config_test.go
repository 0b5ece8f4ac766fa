package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_NAME", "APP_ENVIRONMENT", "APP_DEBUG",
		"SERVER_HOST", "SERVER_PORT",
		"UPSTREAM_BASE_URL", "UPSTREAM_TIMEOUT",
		"REDIS_HOST", "REDIS_PORT",
		"SESSION_COOKIE_NAME", "SESSION_TTL", "SESSION_COOKIE_SECURE",
		"CART_TTL",
		"CORS_ALLOWED_ORIGINS",
		"FEATURES_REGISTRATION", "FEATURES_PASSWORD_RESET",
		"LOG_LEVEL", "LOG_OUTPUT_PATH",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "restau-suria-console" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "restau-suria-console")
	}

	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %q, want %q", cfg.App.Environment, "development")
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}

	if cfg.Upstream.BaseURL != "http://localhost:4000" {
		t.Errorf("Upstream.BaseURL = %q, want %q", cfg.Upstream.BaseURL, "http://localhost:4000")
	}

	if cfg.Upstream.Timeout != 20*time.Second {
		t.Errorf("Upstream.Timeout = %v, want %v", cfg.Upstream.Timeout, 20*time.Second)
	}

	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want %d", cfg.Redis.Port, 6379)
	}

	if cfg.Session.CookieName != "rs_session" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "rs_session")
	}

	if cfg.Session.TTL != 168*time.Hour {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 168*time.Hour)
	}

	if cfg.Cart.TTL != 2*time.Hour {
		t.Errorf("Cart.TTL = %v, want %v", cfg.Cart.TTL, 2*time.Hour)
	}

	// Staged flows default off
	if cfg.Features.Registration {
		t.Error("Features.Registration should default to false")
	}
	if cfg.Features.PasswordReset {
		t.Error("Features.PasswordReset should default to false")
	}
}

func TestLoad_WithEnvOverride(t *testing.T) {
	clearEnv(t)

	os.Setenv("APP_NAME", "console-test")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("UPSTREAM_BASE_URL", "https://api.example.com")
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	os.Setenv("FEATURES_REGISTRATION", "true")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "console-test" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "console-test")
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}

	if cfg.Upstream.BaseURL != "https://api.example.com" {
		t.Errorf("Upstream.BaseURL = %q, want %q", cfg.Upstream.BaseURL, "https://api.example.com")
	}

	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("CORS.AllowedOrigins length = %d, want 2", len(cfg.CORS.AllowedOrigins))
	}
	if cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("CORS.AllowedOrigins[1] = %q, want %q", cfg.CORS.AllowedOrigins[1], "https://b.example.com")
	}

	if !cfg.Features.Registration {
		t.Error("Features.Registration should be true")
	}
	if cfg.Features.PasswordReset {
		t.Error("Features.PasswordReset should remain false")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Name: "console", Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Upstream: UpstreamConfig{BaseURL: "http://localhost:4000", Timeout: 20 * time.Second},
			Session:  SessionConfig{CookieName: "rs_session", TTL: time.Hour},
			Cart:     CartConfig{TTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing app name", func(c *Config) { c.App.Name = "" }, true},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"missing upstream", func(c *Config) { c.Upstream.BaseURL = "" }, true},
		{"bad upstream scheme", func(c *Config) { c.Upstream.BaseURL = "localhost:4000" }, true},
		{"missing cookie name", func(c *Config) { c.Session.CookieName = "" }, true},
		{"zero session ttl", func(c *Config) { c.Session.TTL = 0 }, true},
		{"zero cart ttl", func(c *Config) { c.Cart.TTL = 0 }, true},
		{"insecure cookie in production", func(c *Config) { c.App.Environment = "production" }, true},
		{"secure cookie in production", func(c *Config) {
			c.App.Environment = "production"
			c.Session.CookieSecure = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
