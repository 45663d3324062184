// ABOUTME: Configuration loading and parsing for gateway-editor
// ABOUTME: Supports YAML or TOML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/2389/gateway-editor/internal/codec"
	"github.com/2389/gateway-editor/internal/prefs"
)

// Config represents the complete gateway-editor configuration
type Config struct {
	Storage StorageConfig         `yaml:"storage" toml:"storage"`
	Logging LoggingConfig         `yaml:"logging" toml:"logging"`
	Games   map[string]GameConfig `yaml:"games" toml:"games"`
}

// StorageConfig selects the container database
type StorageConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // sqlite (pure Go) or sqlite3 (cgo)
	Path   string `yaml:"path" toml:"path"`

	BusyTimeout    time.Duration `yaml:"-" toml:"-"`
	BusyTimeoutRaw string        `yaml:"busy_timeout" toml:"busy_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// GameConfig overrides the resource a game's gateways are written to
type GameConfig struct {
	ResourceName string `yaml:"resource_name" toml:"resource_name"`
	ResourceID   int    `yaml:"resource_id" toml:"resource_id"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Driver: "sqlite"},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are parsed as TOML, everything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expanded := expandEnvVars(string(data))

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "sqlite3":
	default:
		return fmt.Errorf("storage.driver must be sqlite or sqlite3, got %q", c.Storage.Driver)
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	for key, g := range c.Games {
		if _, err := codec.ParseGameID(key); err != nil {
			return fmt.Errorf("games.%s: %w", key, err)
		}
		if g.ResourceID < 0 {
			return fmt.Errorf("games.%s.resource_id must not be negative", key)
		}
	}

	return nil
}

// Targets returns the resource overrides keyed by game. Games without a
// resource name keep their default target.
func (c *Config) Targets() map[codec.GameID]prefs.Target {
	defaults := prefs.DefaultTargets()
	targets := make(map[codec.GameID]prefs.Target)
	for key, g := range c.Games {
		game, err := codec.ParseGameID(key)
		if err != nil {
			continue
		}
		t := defaults[game]
		if g.ResourceName != "" {
			t.Name = g.ResourceName
		}
		if g.ResourceID != 0 {
			t.ID = g.ResourceID
		}
		targets[game] = t
	}
	return targets
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Storage.BusyTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Storage.BusyTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing busy_timeout %q: %w", cfg.Storage.BusyTimeoutRaw, err)
		}
		cfg.Storage.BusyTimeout = d
	}
	return nil
}
