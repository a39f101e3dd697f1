// Package config loads folio-core settings from an optional YAML file and
// environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends
const (
	BackendAuto     = ""
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// Config is the root configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Content  ContentConfig  `yaml:"content"`
	Cache    CacheConfig    `yaml:"cache"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Editor   EditorConfig   `yaml:"editor"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ContentConfig configures the load tiers
type ContentConfig struct {
	APIURL        string        `yaml:"api_url"`    // remote content API root; empty disables the tier
	APITimeout    time.Duration `yaml:"api_timeout"`
	BundleURL     string        `yaml:"bundle_url"` // http(s) URL or file path; empty disables the tier
	MaxCacheBytes int           `yaml:"max_cache_bytes"`
}

// CacheConfig selects and configures the persistent cache
type CacheConfig struct {
	Backend     string `yaml:"backend"` // sqlite, redis, postgres, none; empty picks from the URLs
	Key         string `yaml:"key"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`
}

// DispatchConfig configures the automation hook
type DispatchConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// EditorConfig configures the editor session
type EditorConfig struct {
	AutoSaveEnabled  bool          `yaml:"autosave_enabled"`
	AutoSaveInterval time.Duration `yaml:"autosave_interval"`
}

// LoggingConfig configures slog
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the defaults used when no file or variable is set
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Content: ContentConfig{
			APITimeout:    10 * time.Second,
			MaxCacheBytes: 10 << 20,
		},
		Cache: CacheConfig{
			Key:        "portfolio-content",
			SQLitePath: "data/folio.db",
		},
		Editor: EditorConfig{
			AutoSaveEnabled:  true,
			AutoSaveInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	c.Content.APIURL = getEnv("CONTENT_API_URL", c.Content.APIURL)
	c.Content.APITimeout = getEnvDuration("CONTENT_API_TIMEOUT", c.Content.APITimeout)
	c.Content.BundleURL = getEnv("BUNDLE_URL", c.Content.BundleURL)
	c.Content.MaxCacheBytes = getEnvInt("MAX_CACHE_BYTES", c.Content.MaxCacheBytes)

	c.Cache.Backend = getEnv("CACHE_BACKEND", c.Cache.Backend)
	c.Cache.Key = getEnv("CACHE_KEY", c.Cache.Key)
	c.Cache.SQLitePath = getEnv("SQLITE_PATH", c.Cache.SQLitePath)
	c.Cache.RedisURL = getEnv("REDIS_URL", c.Cache.RedisURL)
	c.Cache.DatabaseURL = getEnv("DATABASE_URL", c.Cache.DatabaseURL)

	c.Dispatch.URL = getEnv("DISPATCH_URL", c.Dispatch.URL)
	c.Dispatch.Token = getEnv("DISPATCH_TOKEN", c.Dispatch.Token)

	c.Editor.AutoSaveEnabled = getEnvBool("AUTOSAVE_ENABLED", c.Editor.AutoSaveEnabled)
	c.Editor.AutoSaveInterval = getEnvDuration("AUTOSAVE_INTERVAL", c.Editor.AutoSaveInterval)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate checks the configuration
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendAuto, BackendSQLite, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.Cache.DatabaseURL == "" {
			return fmt.Errorf("cache backend postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (use sqlite, redis, postgres or none)", c.Cache.Backend)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Editor.AutoSaveInterval <= 0 {
		return fmt.Errorf("autosave interval must be positive, got %s", c.Editor.AutoSaveInterval)
	}
	if c.Content.MaxCacheBytes < 0 {
		return fmt.Errorf("max cache bytes must not be negative")
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	if f := c.Logging.Format; f != "text" && f != "json" {
		return fmt.Errorf("unknown log format %q (use text or json)", f)
	}
	return nil
}

// CacheBackend resolves the auto backend: Redis when a Redis URL is set,
// then PostgreSQL when a database URL is set, else SQLite.
func (c *Config) CacheBackend() string {
	if c.Cache.Backend != BackendAuto {
		return c.Cache.Backend
	}
	switch {
	case c.Cache.RedisURL != "":
		return BackendRedis
	case c.Cache.DatabaseURL != "":
		return BackendPostgres
	default:
		return BackendSQLite
	}
}

// SlogLevel parses the configured level
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
