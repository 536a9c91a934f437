// Package config loads QIRT settings from defaults, a YAML file, QIRT_ environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// EnvPrefix is the prefix of environment overrides. A double underscore separates
// nesting levels: QIRT_SERVER__PORT sets server.port.
const EnvPrefix = "QIRT_"

// DefaultFiles are searched in the working directory when no file is given
var DefaultFiles = []string{"qirt.yaml", "qirt.yml"}

// ErrInvalidConfig is returned when a loaded value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full runtime configuration
type Config struct {
	MaxQubits       int           `koanf:"max_qubits"`
	NotationFile    string        `koanf:"notation_file"`
	WatchNotation   bool          `koanf:"watch_notation"`
	LogLevel        string        `koanf:"log_level"`
	Server          ServerConfig  `koanf:"server"`
	StateTTL        time.Duration `koanf:"state_ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	Seed            uint64        `koanf:"seed"`

	// File is the configuration file that was read, if any
	File string `koanf:"-"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// Defaults returns the built-in settings
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"max_qubits":           quantum.DefaultMaxQubits,
		"notation_file":        "",
		"watch_notation":       false,
		"log_level":            "info",
		"server.port":          8080,
		"server.read_timeout":  "15s",
		"server.write_timeout": "15s",
		"state_ttl":            "1h",
		"cleanup_interval":     "5m",
		"seed":                 0,
	}
}

// flagKeys maps flag names whose config key differs from the snake_case form
var flagKeys = map[string]string{
	"port":     "server.port",
	"notation": "notation_file",
	"watch":    "watch_notation",
}

// findConfigFile picks the explicit path or the first default file present
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads the configuration. Precedence (highest to lowest): flags > env vars >
// config file > defaults. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: QIRT_MAX_QUBITS -> max_qubits, QIRT_SERVER__PORT -> server.port
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.MaxQubits < 1 || c.MaxQubits > quantum.HardMaxQubits {
		return fmt.Errorf("%w: max_qubits must be between 1 and %d, got %d", ErrInvalidConfig, quantum.HardMaxQubits, c.MaxQubits)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("%w: state_ttl must be positive", ErrInvalidConfig)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("%w: cleanup_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
