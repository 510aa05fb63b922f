package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"BCVMonitor/internal/collector"
	"BCVMonitor/internal/dashboard"
	"BCVMonitor/internal/store"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Relay is one third-party relay; Template holds a single %s for the page URL.
type Relay struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Source struct {
		PageURL       string        `yaml:"page_url"`
		BackendURL    string        `yaml:"backend_url"`
		SameOrigin    *bool         `yaml:"same_origin"`
		Relays        []Relay       `yaml:"relays"`
		Timeout       time.Duration `yaml:"timeout"`
		DirectTimeout time.Duration `yaml:"direct_timeout"`
		RatePerMinute int           `yaml:"rate_per_minute"`
	} `yaml:"source"`
	Dashboard struct {
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		CacheTTL        time.Duration `yaml:"cache_ttl"`
		AutoRefresh     *bool         `yaml:"auto_refresh"`
	} `yaml:"dashboard"`
	Cache struct {
		Backend       string `yaml:"backend"`
		FilePath      string `yaml:"file_path"`
		SQLitePath    string `yaml:"sqlite_path"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy    string `yaml:"proxy"`
	LogLevel string `yaml:"log_level"`
}

// Load reads the optional .env file and config from a YAML file, then
// applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("BCV_PAGE_URL"); v != "" {
		c.Source.PageURL = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		c.Source.BackendURL = v
	}
	if v, ok := getEnvBool("SAME_ORIGIN"); ok {
		c.Source.SameOrigin = &v
	}
	if v, ok := getEnvDuration("SOURCE_TIMEOUT"); ok {
		c.Source.Timeout = v
	}
	if v, ok := getEnvInt("RATE_PER_MINUTE"); ok {
		c.Source.RatePerMinute = v
	}
	if v, ok := getEnvDuration("REFRESH_INTERVAL"); ok {
		c.Dashboard.RefreshInterval = v
	}
	if v, ok := getEnvDuration("CACHE_TTL"); ok {
		c.Dashboard.CacheTTL = v
	}
	if v, ok := getEnvBool("AUTO_REFRESH"); ok {
		c.Dashboard.AutoRefresh = &v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_FILE"); v != "" {
		c.Cache.FilePath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Cache.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.RedisDB = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Source.PageURL == "" {
		c.Source.PageURL = collector.DefaultPageURL
	}
	if c.Source.SameOrigin == nil {
		same := c.Source.BackendURL != "" && collector.IsLocal(c.Source.BackendURL)
		c.Source.SameOrigin = &same
	}
	if len(c.Source.Relays) == 0 {
		c.Source.Relays = []Relay{
			{Name: "allorigins", Template: collector.RelayAllOrigins},
			{Name: "corsproxy", Template: collector.RelayCorsProxy},
		}
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = collector.DefaultTimeout
	}
	if c.Source.DirectTimeout == 0 {
		c.Source.DirectTimeout = collector.DirectTimeout
	}
	if c.Source.RatePerMinute == 0 {
		c.Source.RatePerMinute = 6
	}
	if c.Dashboard.RefreshInterval == 0 {
		c.Dashboard.RefreshInterval = dashboard.DefaultInterval
	}
	if c.Dashboard.CacheTTL == 0 {
		c.Dashboard.CacheTTL = store.DefaultTTL
	}
	if c.Dashboard.AutoRefresh == nil {
		on := true
		c.Dashboard.AutoRefresh = &on
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Cache.FilePath == "" {
		c.Cache.FilePath = "data/bcv_cache.json"
	}
	if c.Cache.SQLitePath == "" {
		c.Cache.SQLitePath = "data/bcv_monitor.db"
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("cache.backend %q is not one of memory, file, sqlite, redis", c.Cache.Backend)
	}
	if *c.Source.SameOrigin && c.Source.BackendURL == "" {
		return fmt.Errorf("source.backend_url is required when source.same_origin is set")
	}
	for i, r := range c.Source.Relays {
		if strings.Count(r.Template, "%s") != 1 {
			return fmt.Errorf("source.relays[%d].template must contain exactly one %%s", i)
		}
	}
	if c.Dashboard.RefreshInterval < time.Second {
		return fmt.Errorf("dashboard.refresh_interval must be at least 1s")
	}
	if c.Dashboard.CacheTTL <= 0 {
		return fmt.Errorf("dashboard.cache_ttl must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether the chat channel is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func getEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func getEnvDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
