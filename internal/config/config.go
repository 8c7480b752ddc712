// Package config holds service configuration, loaded from environment
// variables (kelseyhightower/envconfig) or from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tray      TrayConfig      `yaml:"tray"`
	Sync      SyncConfig      `yaml:"sync"`
	Sessions  SessionConfig   `yaml:"sessions"`
	Logging   LogConfig       `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000" yaml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host"`
}

// TrayConfig holds tab tray behavior configuration.
type TrayConfig struct {
	// InactiveAfter is how long a normal tab can go unaccessed before it
	// appears in the inactive sub-section.
	InactiveAfter time.Duration `envconfig:"INACTIVE_AFTER" default:"336h" yaml:"inactive_after"`
}

// SyncConfig holds synced-tab refresh configuration.
type SyncConfig struct {
	Endpoint string        `envconfig:"SYNC_ENDPOINT" default:"" yaml:"endpoint"`
	Interval time.Duration `envconfig:"SYNC_INTERVAL" default:"5m" yaml:"interval"`
	Enabled  bool          `envconfig:"SYNC_ENABLED" default:"false" yaml:"enabled"`
}

// SessionConfig holds session persistence configuration.
type SessionConfig struct {
	Dir string `envconfig:"SESSIONS_DIR" default:"/tmp/tabstray/sessions" yaml:"dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads configuration from a YAML file layered over defaults.
// Values set in the file replace the defaults; environment variables are
// not consulted.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
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
			Port: "8000",
			Host: "0.0.0.0",
		},
		Tray: TrayConfig{
			InactiveAfter: 336 * time.Hour, // two weeks
		},
		Sync: SyncConfig{
			Interval: 5 * time.Minute,
			Enabled:  false,
		},
		Sessions: SessionConfig{
			Dir: "/tmp/tabstray/sessions",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
