package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/franklinfx2/master-trader-sub000/rules"
)

// Config is the complete tradejournal configuration.
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Mining  MiningConfig  `json:"mining" yaml:"mining"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// JournalConfig selects the trade store.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "sqlite", "postgres" or "memory"
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	PostgresDSN string `json:"postgres_dsn,omitempty" yaml:"postgres_dsn,omitempty"`
}

// MiningConfig holds the rule thresholds plus the default trade window.
type MiningConfig struct {
	rules.Thresholds `yaml:",inline"`
	// RecentTrades limits mining to the newest N trades; 0 mines everything.
	RecentTrades int `json:"recent_trades" yaml:"recent_trades"`
}

// CacheConfig selects where mined reports are memoized.
type CacheConfig struct {
	Type          string `json:"type" yaml:"type"` // "none", "memory" or "redis"
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
	TTL           string `json:"ttl,omitempty" yaml:"ttl,omitempty"` // e.g. "24h", "30m"
}

// ParseTTL converts TTL to a duration. Empty means 0, the store default.
func (c CacheConfig) ParseTTL() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.TTL)
}

// ServerConfig is the HTTP listener.
type ServerConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // console or json
}

// LoadFromFile loads configuration from a YAML or JSON file. Keys missing
// from the file keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "postgres":
		if c.Journal.PostgresDSN == "" {
			return fmt.Errorf("journal.postgres_dsn required for postgres type")
		}
	case "memory":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'postgres' or 'memory'")
	}

	if err := c.Mining.Thresholds.Validate(); err != nil {
		return fmt.Errorf("mining.%w", err)
	}
	if c.Mining.RecentTrades < 0 {
		return fmt.Errorf("mining.recent_trades must not be negative")
	}

	switch c.Cache.Type {
	case "none", "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr required for redis type")
		}
	default:
		return fmt.Errorf("cache.type must be 'none', 'memory' or 'redis'")
	}
	if ttl, err := c.Cache.ParseTTL(); err != nil || ttl < 0 {
		return fmt.Errorf("cache.ttl must be a non-negative duration like 24h")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./journal.db",
		},
		Mining: MiningConfig{
			Thresholds: rules.DefaultThresholds(),
		},
		Cache: CacheConfig{
			Type: "memory",
			TTL:  "24h",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
