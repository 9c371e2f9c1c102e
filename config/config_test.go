package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("APP_BASE_URL", "https://portfolio.example.com")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse returned error: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected IsDev to be true")
	}
	if cfg.Backend.BaseURL != "https://api.example.com/v1" {
		t.Errorf("expected backend base URL without trailing slash, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("expected backend timeout 5s, got %v", cfg.Backend.Timeout)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected HTTP addr :9090, got %q", cfg.HTTP.Addr)
	}
	if cfg.Session.Store != SessionStoreRedis {
		t.Errorf("expected redis session store, got %q", cfg.Session.Store)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("expected session TTL 2h, got %v", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("unexpected redis addr %q", cfg.Redis.Addr)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis DB 3, got %d", cfg.Redis.DB)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse returned error: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.BaseURL != "http://localhost:3000" {
		t.Errorf("unexpected default backend base URL %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("unexpected default backend timeout %v", cfg.Backend.Timeout)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("unexpected default HTTP addr %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.CompressionLevel != 6 {
		t.Errorf("unexpected default compression level %d", cfg.HTTP.CompressionLevel)
	}
	if cfg.Session.Store != SessionStoreMemory {
		t.Errorf("unexpected default session store %q", cfg.Session.Store)
	}
	if cfg.Session.TTL != 8*time.Hour {
		t.Errorf("unexpected default session TTL %v", cfg.Session.TTL)
	}
	if cfg.Session.KeyPrefix != "portfolio:session:" {
		t.Errorf("unexpected default session key prefix %q", cfg.Session.KeyPrefix)
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse returned error: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}

func TestHTTPConfig_SanitizeClampsCompressionLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected int
	}{
		{name: "below range", level: 0, expected: 1},
		{name: "negative", level: -4, expected: 1},
		{name: "in range", level: 5, expected: 5},
		{name: "above range", level: 12, expected: 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := HTTPConfig{CompressionLevel: tc.level}
			h.Sanitize()
			if h.CompressionLevel != tc.expected {
				t.Errorf("expected level %d, got %d", tc.expected, h.CompressionLevel)
			}
		})
	}
}

func TestSessionConfig_SanitizeUnknownStore(t *testing.T) {
	s := SessionConfig{Store: "postgres", TTL: time.Hour}
	s.Sanitize()
	if s.Store != SessionStoreMemory {
		t.Errorf("expected unknown store to fall back to memory, got %q", s.Store)
	}

	s = SessionConfig{Store: "  Redis ", TTL: time.Hour}
	s.Sanitize()
	if s.Store != SessionStoreRedis {
		t.Errorf("expected trimmed lowercase redis, got %q", s.Store)
	}
}
