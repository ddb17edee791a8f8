// Package config loads runtime configuration from a YAML or TOML file and
// applies MVVMKIT_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MVVMKIT_"

// Dispatcher modes.
const (
	ModeImmediate = "immediate"
	ModeQueue     = "queue"
)

// Config is the root configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" toml:"log" envPrefix:"LOG_"`
	Dispatcher DispatcherConfig `yaml:"dispatcher" toml:"dispatcher" envPrefix:"DISPATCHER_"`
	EventBus   EventBusConfig   `yaml:"event_bus" toml:"event_bus" envPrefix:"EVENT_BUS_"`
	Mongo      MongoConfig      `yaml:"mongo" toml:"mongo" envPrefix:"MONGO_"`

	// ManifestDir holds session manager manifests. Empty uses the embedded set.
	ManifestDir string `yaml:"manifest_dir" toml:"manifest_dir" env:"MANIFEST_DIR"`
}

// LogConfig configures infrastructure/logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" env:"LEVEL"`
	Dir   string `yaml:"dir" toml:"dir" env:"DIR"`
	JSON  bool   `yaml:"json" toml:"json" env:"JSON"`
}

// DispatcherConfig selects how controllers run commands.
type DispatcherConfig struct {
	Mode        string `yaml:"mode" toml:"mode" env:"MODE"`
	QueueSize   int    `yaml:"queue_size" toml:"queue_size" env:"QUEUE_SIZE"`
	LogCommands bool   `yaml:"log_commands" toml:"log_commands" env:"LOG_COMMANDS"`
}

// EventBusConfig sizes the diagnostic event bus.
type EventBusConfig struct {
	Buffer int `yaml:"buffer" toml:"buffer" env:"BUFFER"`
}

// MongoConfig configures snapshot persistence.
type MongoConfig struct {
	Enabled        bool          `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	URI            string        `yaml:"uri" toml:"uri" env:"URI"`
	Database       string        `yaml:"database" toml:"database" env:"DATABASE"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" toml:"connect_timeout" env:"CONNECT_TIMEOUT"`
	PingTimeout    time.Duration `yaml:"ping_timeout" toml:"ping_timeout" env:"PING_TIMEOUT"`
}

// Default returns sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Dispatcher: DispatcherConfig{
			Mode:      ModeImmediate,
			QueueSize: 100,
		},
		EventBus: EventBusConfig{
			Buffer: 100,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "mvvmkit",
			ConnectTimeout: 10 * time.Second,
			PingTimeout:    5 * time.Second,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format: %s", path)
	}
	return nil
}

// Validate rejects settings the wiring cannot honour.
func (c *Config) Validate() error {
	switch c.Dispatcher.Mode {
	case ModeImmediate, ModeQueue:
	default:
		return fmt.Errorf("dispatcher.mode: unknown mode %q", c.Dispatcher.Mode)
	}
	if c.Dispatcher.Mode == ModeQueue && c.Dispatcher.QueueSize <= 0 {
		return fmt.Errorf("dispatcher.queue_size: must be positive, got %d", c.Dispatcher.QueueSize)
	}
	if c.Mongo.Enabled && c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri: required when mongo is enabled")
	}
	return nil
}
