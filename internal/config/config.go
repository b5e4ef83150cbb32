package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds server settings loaded from houls.yml, houls.yaml or
// houls.toml, with environment variables taking precedence.
type Config struct {
	LogDir           string `yaml:"logDir,omitempty" toml:"logDir,omitempty" envconfig:"HOULS_LOG_DIR"`
	LogFile          string `yaml:"logFile,omitempty" toml:"logFile,omitempty" envconfig:"HOULS_LOG_FILE"`
	LogLevel         string `yaml:"logLevel,omitempty" toml:"logLevel,omitempty" envconfig:"HOULS_LOG_LEVEL"`
	LogFormat        string `yaml:"logFormat,omitempty" toml:"logFormat,omitempty" envconfig:"HOULS_LOG_FORMAT"`
	PositionEncoding string `yaml:"positionEncoding,omitempty" toml:"positionEncoding,omitempty" envconfig:"HOULS_POSITION_ENCODING"`
	MCPAddr          string `yaml:"mcpAddr,omitempty" toml:"mcpAddr,omitempty" envconfig:"HOULS_MCP_ADDR"`
}

// Default returns the built-in settings. Logs go to houls_logs/houls.log,
// rotated daily.
func Default() *Config {
	return &Config{
		LogDir:           "houls_logs",
		LogFile:          "houls.log",
		LogLevel:         "info",
		LogFormat:        "json",
		PositionEncoding: "utf-8",
	}
}

var fileNames = []string{"houls.yml", "houls.yaml", "houls.toml"}

// Load reads the first config file found in dir over the defaults, then
// applies HOULS_* environment overrides. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(name, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(name string, data []byte, cfg *Config) error {
	if filepath.Ext(name) == ".toml" {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q: want debug, info, warn or error", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logFormat %q: want json or console", c.LogFormat)
	}
	if c.LogFile == "" {
		return errors.New("logFile must not be empty")
	}
	switch c.PositionEncoding {
	case "utf-8", "utf-16":
	default:
		return fmt.Errorf("invalid positionEncoding %q: want utf-8 or utf-16", c.PositionEncoding)
	}
	return nil
}
