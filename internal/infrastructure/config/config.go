package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	KV        KVConfig
	Desktop   DesktopConfig
	Apps      AppsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	Compress        bool          `envconfig:"COMPRESS" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE"`
	MaxSizeMB   int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	MaxBackups  int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays  int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StorageConfig selects the record store behind the virtual file system.
type StorageConfig struct {
	Driver          string        `envconfig:"STORAGE_DRIVER" default:"memory"`
	DSN             string        `envconfig:"STORAGE_DSN"`
	BreakerFailures uint32        `envconfig:"STORAGE_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"STORAGE_BREAKER_TIMEOUT" default:"30s"`
}

// KVConfig selects the key/value store for spreadsheet and notepad slots.
type KVConfig struct {
	Driver           string `envconfig:"KV_DRIVER" default:"memory"`
	DSN              string `envconfig:"KV_DSN"`
	ConsulAddress    string `envconfig:"CONSUL_ADDR" default:"127.0.0.1:8500"`
	ConsulToken      string `envconfig:"CONSUL_TOKEN"`
	ConsulDatacenter string `envconfig:"CONSUL_DATACENTER"`
	ConsulPrefix     string `envconfig:"CONSUL_PREFIX" default:"lumin-os/"`
}

// DesktopConfig holds desktop geometry and window transition timings.
type DesktopConfig struct {
	Width      float64       `envconfig:"DESKTOP_WIDTH" default:"1280"`
	Height     float64       `envconfig:"DESKTOP_HEIGHT" default:"800"`
	OpenDelay  time.Duration `envconfig:"WINDOW_OPEN_DELAY" default:"16ms"`
	CloseDelay time.Duration `envconfig:"WINDOW_CLOSE_DELAY" default:"300ms"`
}

// AppsConfig points at extra app manifests.
type AppsConfig struct {
	Dir string `envconfig:"APPS_DIR"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			AllowedOrigins:  []string{"*"},
			Compress:        true,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Driver:          "memory",
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		KV: KVConfig{
			Driver:        "memory",
			ConsulAddress: "127.0.0.1:8500",
			ConsulPrefix:  "lumin-os/",
		},
		Desktop: DesktopConfig{
			Width:      1280,
			Height:     800,
			OpenDelay:  16 * time.Millisecond,
			CloseDelay: 300 * time.Millisecond,
		},
	}
}
