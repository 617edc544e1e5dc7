package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port int `yaml:"port" toml:"port"`
	} `yaml:"server" toml:"server"`
	Scan struct {
		Pattern      string `yaml:"pattern" toml:"pattern"`
		MaxLineBytes int    `yaml:"max_line_bytes" toml:"max_line_bytes"`
	} `yaml:"scan" toml:"scan"`
	Archive struct {
		NameLayout string `yaml:"name_layout" toml:"name_layout"`
	} `yaml:"archive" toml:"archive"`
	Logging struct {
		Level  string `yaml:"level" toml:"level"`
		Format string `yaml:"format" toml:"format"`
	} `yaml:"logging" toml:"logging"`
	Tasks struct {
		Retain int `yaml:"retain" toml:"retain"`
	} `yaml:"tasks" toml:"tasks"`
}

// Default returns a Config with every default filled in.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file. A missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, &ConfigError{Field: path, Message: err.Error()}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Scan.Pattern == "" {
		c.Scan.Pattern = "*.log"
	}
	if c.Scan.MaxLineBytes == 0 {
		c.Scan.MaxLineBytes = 10 * 1024 * 1024
	}
	if c.Archive.NameLayout == "" {
		c.Archive.NameLayout = "02012006"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "human"
	}
	if c.Tasks.Retain == 0 {
		c.Tasks.Retain = 100
	}
}

// Validate checks the values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "must be between 1 and 65535"}
	}
	if !doublestar.ValidatePattern(c.Scan.Pattern) || strings.ContainsRune(c.Scan.Pattern, '/') {
		return &ConfigError{Field: "scan.pattern", Message: "must be a file name glob such as *.log"}
	}
	if c.Scan.MaxLineBytes < 0 {
		return &ConfigError{Field: "scan.max_line_bytes", Message: "must not be negative"}
	}
	if c.Tasks.Retain < 0 {
		return &ConfigError{Field: "tasks.retain", Message: "must not be negative"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
