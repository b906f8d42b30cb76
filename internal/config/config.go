// Package config loads grindstone settings from ~/.grindstone/config.toml
// and GRIND_* environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Calendar CalendarConfig `toml:"calendar"`
	History  HistoryConfig  `toml:"history"`
	API      APIConfig      `toml:"api"`
	Logging  LoggingConfig  `toml:"logging"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// CalendarConfig picks the timezone that decides where a day starts.
type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

type HistoryConfig struct {
	BackfillDays int `toml:"backfill_days"`
	RecentDays   int `toml:"recent_days"`
}

type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives use-case logs; empty disables them.
	File string `toml:"file"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

func DefaultConfig() Config {
	home := Home()
	return Config{
		Database: DatabaseConfig{Path: filepath.Join(home, "grind.db")},
		Calendar: CalendarConfig{Timezone: "UTC"},
		History:  HistoryConfig{BackfillDays: 30, RecentDays: 7},
		API:      APIConfig{Host: "127.0.0.1", Port: 7878},
		Logging:  LoggingConfig{Level: "info"},
		Metrics:  MetricsConfig{Enabled: true},
	}
}

// Load reads the config file when present, then applies environment
// overrides. A missing file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if err := loadFile(Path(), &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Save writes cfg to the config file.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GRIND_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GRIND_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("GRIND_BACKFILL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.History.BackfillDays = n
		}
	}
	if v := os.Getenv("GRIND_RECENT_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.History.RecentDays = n
		}
	}
	if v := os.Getenv("GRIND_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("GRIND_API_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.API.Port = n
		}
	}
	if v := os.Getenv("GRIND_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GRIND_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("GRIND_METRICS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}

// Validate checks the values that would otherwise fail later and far away.
func (c Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.Logging.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	return lvl, nil
}

// Addr is the API listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// Path is the config file location.
func Path() string {
	return filepath.Join(Home(), "config.toml")
}

// Home returns the grindstone data directory, GRIND_HOME when set.
func Home() string {
	if env := os.Getenv("GRIND_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".grindstone")
}
