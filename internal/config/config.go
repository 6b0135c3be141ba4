// Package config loads the proxygen TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Dataset sources.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Dataset  DatasetConfig  `toml:"dataset"`
	Decklist DecklistConfig `toml:"decklist"`
	API      APIConfig      `toml:"api"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`     // e.g. "15s"
	WriteTimeout    string `toml:"write_timeout"`    // e.g. "30s"
	RequestTimeout  string `toml:"request_timeout"`  // per-request handler deadline
	ShutdownTimeout string `toml:"shutdown_timeout"` // graceful shutdown grace period
	MaxBodyBytes    int64  `toml:"max_body_bytes"`   // decklist upload ceiling
}

// DatasetConfig says where the reference dataset comes from.
type DatasetConfig struct {
	Path               string `toml:"path"`    // AllCards JSON dump
	DBPath             string `toml:"db_path"` // SQLite snapshot database
	Source             string `toml:"source"`  // "json" or "sqlite"
	IncludeUnsupported bool   `toml:"include_unsupported"`
	StrictCollisions   bool   `toml:"strict_collisions"`
}

// DecklistConfig contains decklist limits.
type DecklistConfig struct {
	MaxTotalCount int `toml:"max_total_count"` // 0 falls back to decklist.MaxCards
}

// APIConfig contains rate limiting and CORS settings.
type APIConfig struct {
	RateLimit      float64  `toml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst      int      `toml:"rate_burst"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `toml:"level"`       // debug, info, warn, error
	Development bool   `toml:"development"` // console encoder instead of JSON
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     "15s",
			WriteTimeout:    "30s",
			RequestTimeout:  "30s",
			ShutdownTimeout: "10s",
			MaxBodyBytes:    1 << 20,
		},
		Dataset: DatasetConfig{
			Path:   "AllCards.json",
			DBPath: "",
			Source: SourceJSON,
		},
		Decklist: DecklistConfig{
			MaxTotalCount: 300,
		},
		API: APIConfig{
			RateLimit:      10,
			RateBurst:      20,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.proxygen/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".proxygen", "config.toml"), nil
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty. A missing file yields the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}

	durations := map[string]string{
		"read timeout":     c.Server.ReadTimeout,
		"write timeout":    c.Server.WriteTimeout,
		"request timeout":  c.Server.RequestTimeout,
		"shutdown timeout": c.Server.ShutdownTimeout,
	}
	for name, v := range durations {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
		if d < 0 {
			return fmt.Errorf("%s cannot be negative: %s", name, v)
		}
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive: %d", c.Server.MaxBodyBytes)
	}

	switch c.Dataset.Source {
	case SourceJSON:
		if c.Dataset.Path == "" {
			return errors.New("dataset path is required for the json source")
		}
	case SourceSQLite:
		if c.Dataset.DBPath == "" {
			return errors.New("dataset db_path is required for the sqlite source")
		}
	default:
		return fmt.Errorf("invalid dataset source %q (want %q or %q)", c.Dataset.Source, SourceJSON, SourceSQLite)
	}

	if c.Decklist.MaxTotalCount < 0 {
		return fmt.Errorf("max total count cannot be negative: %d", c.Decklist.MaxTotalCount)
	}

	if c.API.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative: %v", c.API.RateLimit)
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1 when rate limiting: %d", c.API.RateBurst)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Timeouts returns the parsed server durations. Call Validate first.
func (c *Config) Timeouts() (read, write, request, shutdown time.Duration) {
	read, _ = time.ParseDuration(c.Server.ReadTimeout)
	write, _ = time.ParseDuration(c.Server.WriteTimeout)
	request, _ = time.ParseDuration(c.Server.RequestTimeout)
	shutdown, _ = time.ParseDuration(c.Server.ShutdownTimeout)
	return read, write, request, shutdown
}
