// Package config loads tool configuration from an optional YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pcb-transition/internal/trace"
	"pcb-transition/internal/transition"
	"pcb-transition/internal/units"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	Transition  transition.Config `yaml:"transition"`
	Corrections trace.Corrections `yaml:"corrections"`

	// Unit is the display unit used when no preference has been saved.
	Unit string `yaml:"unit"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transition:  transition.DefaultConfig(),
		Corrections: trace.DefaultCorrections(),
		Unit:        string(units.MM),
		LogFile:     filepath.Join(os.TempDir(), "pcb-transition.log"),
		LogLevel:    "INFO",
	}
}

// DefaultPath returns ~/.config/pcb-transition/config.yaml.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "pcb-transition", "config.yaml")
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.LogFile = getEnv("PCBT_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("PCBT_LOG_LEVEL", cfg.LogLevel)
	cfg.Unit = getEnv("PCBT_UNIT", cfg.Unit)
	if v := os.Getenv("PCBT_MAX_SEGMENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("PCBT_MAX_SEGMENTS: %w", err)
		}
		cfg.Transition.MaxSegments = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Transition.Validate(); err != nil {
		return fmt.Errorf("transition: %w", err)
	}
	if c.Corrections.ArcWidthScale <= 0 {
		return fmt.Errorf("corrections: arc_width_scale must be positive, got %g", c.Corrections.ArcWidthScale)
	}
	if _, err := units.Parse(c.Unit); err != nil {
		return err
	}
	return nil
}

// DisplayUnit returns the configured unit. Validate guarantees it parses.
func (c Config) DisplayUnit() units.Unit {
	u, err := units.Parse(c.Unit)
	if err != nil {
		return units.MM
	}
	return u
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
