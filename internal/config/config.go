// Package config loads the exchange's runtime configuration: an optional YAML
// file, then environment overrides, then validation. Invalid configuration
// fails at startup.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file when --config is not given
const EnvConfigPath = "FREIGHT_CONFIG"

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all runtime configuration
type Config struct {
	Port            string          `yaml:"port"`
	LogLevel        string          `yaml:"log_level"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	Store           StoreConfig     `yaml:"store"`
	Journal         JournalConfig   `yaml:"journal"`
	Sweep           SweepConfig     `yaml:"sweep"`
	WebSocket       WebSocketConfig `yaml:"websocket"`
}

// StoreConfig selects and locates the persistence backend
type StoreConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
}

// JournalConfig configures the Redis event journal. An empty RedisURL
// disables the journal.
type JournalConfig struct {
	RedisURL string `yaml:"redis_url"`
	Stream   string `yaml:"stream"`
	MaxLen   int64  `yaml:"max_len"`
}

// SweepConfig schedules bid expiry
type SweepConfig struct {
	Spec string `yaml:"spec"`
}

// WebSocketConfig tunes the live connection endpoint
type WebSocketConfig struct {
	AllowedOrigins []string      `yaml:"allowed_origins"`
	QueueSize      int           `yaml:"queue_size"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Port:            "8080",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		Store:           StoreConfig{Driver: DriverMemory},
		Journal:         JournalConfig{Stream: "freight:events", MaxLen: 100_000},
		Sweep:           SweepConfig{Spec: "@every 1m"},
		WebSocket:       WebSocketConfig{QueueSize: 64, WriteTimeout: 5 * time.Second},
	}
}

// Load builds the configuration. path may be empty, in which case
// FREIGHT_CONFIG is consulted; with neither set only defaults and the
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("STORE_DRIVER", &c.Store.Driver)
	str("SQLITE_PATH", &c.Store.SQLitePath)
	str("DATABASE_URL", &c.Store.DatabaseURL)
	str("REDIS_URL", &c.Journal.RedisURL)
	str("SWEEP_SPEC", &c.Sweep.Spec)

	if v, ok := lookup("WS_ALLOWED_ORIGINS"); ok && v != "" {
		c.WebSocket.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("JOURNAL_MAXLEN"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: JOURNAL_MAXLEN: %w", err)
		}
		c.Journal.MaxLen = n
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

// Validate checks that the selected driver has what it needs
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: port %q is not a number", c.Port)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	if c.Sweep.Spec == "" {
		return errors.New("config: sweep spec is required")
	}
	if c.Journal.MaxLen < 0 {
		return errors.New("config: journal max_len must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("config: shutdown_timeout must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
