package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func validConfig() *Config {
	return &Config{
		Port:           "3000",
		Env:            "development",
		LogLevel:       "info",
		APIBaseURL:     "http://localhost:3001/api",
		APITimeout:     10 * time.Second,
		RequestTimeout: 15 * time.Second,
		BodyLimit:      "1M",
		PageSize:       20,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:3001/api" {
		t.Errorf("expected default api url, got %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("expected default api timeout 10s, got %s", cfg.APITimeout)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected default request timeout 15s, got %s", cfg.RequestTimeout)
	}
	if cfg.PageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.PageSize)
	}
	if cfg.ResetSelectorOnSubmit {
		t.Error("expected selector reset to be off by default")
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 20 {
		t.Errorf("expected rate limit 5/20, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://patients.example.com/api/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("RESET_SELECTOR_ON_SUBMIT", "true")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://patients.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.APITimeout)
	}
	if cfg.PageSize != 5 {
		t.Errorf("expected page size 5, got %d", cfg.PageSize)
	}
	if !cfg.ResetSelectorOnSubmit {
		t.Error("expected selector reset to be on")
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("expected rate limit 0.5, got %v", cfg.RateLimitRPS)
	}
}

func TestLoad_FromDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=4000\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("expected port from .env, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from .env, got %s", cfg.LogLevel)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
	if !c.IsProduction() {
		t.Error("expected IsProduction() to return true for production")
	}
}

func TestConfig_Level(t *testing.T) {
	c := validConfig()
	c.LogLevel = "WARN"
	lvl, err := c.Level()
	if err != nil || lvl != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v, %v", lvl, err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"https url", func(c *Config) { c.APIBaseURL = "https://api.example.com" }, false},
		{"ftp url", func(c *Config) { c.APIBaseURL = "ftp://example.com" }, true},
		{"no host", func(c *Config) { c.APIBaseURL = "http://" }, true},
		{"zero api timeout", func(c *Config) { c.APITimeout = 0 }, true},
		{"negative request timeout", func(c *Config) { c.RequestTimeout = -time.Second }, true},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"negative burst", func(c *Config) { c.RateLimitBurst = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
