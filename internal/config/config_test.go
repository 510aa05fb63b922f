package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"BCVMonitor/internal/collector"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Source.PageURL != collector.DefaultPageURL {
		t.Errorf("unexpected page url %q", cfg.Source.PageURL)
	}
	if len(cfg.Source.Relays) != 2 || cfg.Source.Relays[0].Template != collector.RelayAllOrigins {
		t.Errorf("unexpected default relays %+v", cfg.Source.Relays)
	}
	if *cfg.Source.SameOrigin {
		t.Error("same-origin must default to off without a backend")
	}
	if cfg.Dashboard.RefreshInterval != 5*time.Minute || cfg.Dashboard.CacheTTL != 10*time.Minute {
		t.Errorf("unexpected timings %v/%v", cfg.Dashboard.RefreshInterval, cfg.Dashboard.CacheTTL)
	}
	if !*cfg.Dashboard.AutoRefresh || cfg.Cache.Backend != BackendMemory {
		t.Errorf("unexpected dashboard defaults %+v", cfg.Dashboard)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be off by default")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
source:
  backend_url: "http://localhost:8080"
  relays:
    - name: mirror
      template: "https://mirror.example/?u=%s"
  timeout: 3s
dashboard:
  refresh_interval: 1m
  auto_refresh: false
cache:
  backend: sqlite
  sqlite_path: /tmp/x.db
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Source.Timeout != 3*time.Second {
		t.Errorf("unexpected values %q %v", cfg.Server.Addr, cfg.Source.Timeout)
	}
	if !*cfg.Source.SameOrigin {
		t.Error("a localhost backend should count as same-origin")
	}
	if len(cfg.Source.Relays) != 1 || cfg.Source.Relays[0].Name != "mirror" {
		t.Errorf("unexpected relays %+v", cfg.Source.Relays)
	}
	if *cfg.Dashboard.AutoRefresh || cfg.Dashboard.RefreshInterval != time.Minute {
		t.Errorf("unexpected dashboard %+v", cfg.Dashboard)
	}
	if cfg.Cache.Backend != BackendSQLite || cfg.LogLevel != "debug" {
		t.Errorf("unexpected cache/log %q %q", cfg.Cache.Backend, cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REFRESH_INTERVAL", "30s")
	t.Setenv("SAME_ORIGIN", "false")
	t.Setenv("BACKEND_URL", "http://127.0.0.1:8080")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(writeConfig(t, "cache:\n  backend: file\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("env should win over file: %+v", cfg.Cache)
	}
	if cfg.Dashboard.RefreshInterval != 30*time.Second {
		t.Errorf("unexpected interval %v", cfg.Dashboard.RefreshInterval)
	}
	if *cfg.Source.SameOrigin {
		t.Error("explicit SAME_ORIGIN=false must be kept")
	}
	if !cfg.TelegramEnabled() {
		t.Error("expected telegram enabled")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad backend", func(c *Config) { c.Cache.Backend = "mongo" }, "cache.backend"},
		{"same origin without backend", func(c *Config) { on := true; c.Source.SameOrigin = &on }, "backend_url"},
		{"relay template", func(c *Config) { c.Source.Relays = []Relay{{Name: "x", Template: "https://x/"}} }, "relays[0]"},
		{"interval", func(c *Config) { c.Dashboard.RefreshInterval = time.Millisecond }, "refresh_interval"},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "t" }, "telegram"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
