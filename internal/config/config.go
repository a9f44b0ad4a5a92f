// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Default values.
const (
	DefaultServer   = "http://localhost:3000"
	DefaultTimeout  = 10 * time.Second
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
	DefaultLogFmt   = "text"

	configFileName = "config.toml"
)

// Config holds the full configuration for todo.
type Config struct {
	Server    string        `toml:"server" env:"TODO_SERVER"`
	Timeout   time.Duration `toml:"timeout" env:"TODO_TIMEOUT"`
	Theme     string        `toml:"theme" env:"TODO_THEME"`
	NoColor   bool          `toml:"no_color" env:"TODO_NO_COLOR"`
	LogLevel  string        `toml:"log_level" env:"TODO_LOG_LEVEL"`
	LogFormat string        `toml:"log_format" env:"TODO_LOG_FORMAT"`
	LogFile   string        `toml:"log_file" env:"TODO_LOG_FILE"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Server:    DefaultServer,
		Timeout:   DefaultTimeout,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFmt,
	}
}

// Dir is the per-user directory holding config and credentials.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todo"), nil
}

// Load reads configuration in priority order:
// 1. Defaults
// 2. Config file (path, or ~/.todo/config.toml when path is empty)
// 3. Environment variables
//
// An explicit path must exist; the default file is optional.
// Flags are applied by the caller on top of the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.Source = path
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

// Validate rejects values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server: %q is not an absolute URL", c.Server)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout: must be positive, got %s", c.Timeout)
	}
	return nil
}
