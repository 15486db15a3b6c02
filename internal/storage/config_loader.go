package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meridian-data/catalogd/internal/render"
)

const (
	DefaultPort        = 7425
	DefaultMaxPageSize = 100
)

// Config is the daemon configuration file.
type Config struct {
	Listen   ListenConfig   `yaml:"listen"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Display  DisplayConfig  `yaml:"display"`
}

type ListenConfig struct {
	Port   int    `yaml:"port"`
	Socket string `yaml:"socket"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type DisplayConfig struct {
	SummaryRows int `yaml:"summaryRows"`
	MaxPageSize int `yaml:"maxPageSize"`
}

// ConfigLoader handles loading configuration from YAML files.
type ConfigLoader struct {
	configPath string
}

func NewConfigLoader(configPath string) *ConfigLoader {
	return &ConfigLoader{configPath: configPath}
}

// Path returns the configuration file path.
func (cl *ConfigLoader) Path() string { return cl.configPath }

// Load reads, parses, and validates the YAML configuration file, applying
// defaults for omitted fields.
func (cl *ConfigLoader) Load() (*Config, error) {
	data, err := os.ReadFile(cl.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Listen.Port == 0 && config.Listen.Socket == "" {
		config.Listen.Port = DefaultPort
	}
	if config.Database.Path == "" {
		config.Database.Path = "catalog.db"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Display.SummaryRows == 0 {
		config.Display.SummaryRows = render.DefaultRowLimit
	}
	if config.Display.MaxPageSize == 0 {
		config.Display.MaxPageSize = DefaultMaxPageSize
	}
}

func validate(config *Config) error {
	if config.Listen.Port < 0 || config.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d is out of range", config.Listen.Port)
	}
	if config.Listen.Port == 0 && config.Listen.Socket == "" {
		return fmt.Errorf("either listen.port or listen.socket is required")
	}
	switch config.Log.Level {
	case "debug", "info", "warn", "warning", "error", "err":
	default:
		return fmt.Errorf("log.level '%s' is not one of debug|info|warn|error", config.Log.Level)
	}
	if config.Display.SummaryRows < 1 {
		return fmt.Errorf("display.summaryRows must be positive")
	}
	if config.Display.MaxPageSize < 1 {
		return fmt.Errorf("display.maxPageSize must be positive")
	}
	return nil
}
