package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/balkashynov/studylog/internal/tracker"
)

const (
	DefaultTimezone      = tracker.DefaultTimezone
	DefaultHistoryWindow = tracker.DefaultWindow
	DefaultStore         = StoreMemory
	DefaultLogLevel      = "warn"
)

// History store backends. Neither survives a restart.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config is the resolved runtime configuration
type Config struct {
	Timezone      string
	HistoryWindow int
	Store         string
	LogLevel      string
	LogPath       string
}

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timezone      *string `toml:"timezone"`
	HistoryWindow *int    `toml:"history_window"`
	Store         *string `toml:"store"`
	LogLevel      *string `toml:"log_level"`
	LogPath       *string `toml:"log_path"`
}

// Load resolves configuration from the environment, the env file and the TOML file at path.
// An empty path means DefaultConfigPath. Missing files are not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	file, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}

	env, err := loadEnv(envFilePath(path))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Timezone: coalesce(env("STUDYLOG_TIMEZONE"), deref(file.Timezone), DefaultTimezone),
		Store:    coalesce(env("STUDYLOG_STORE"), deref(file.Store), DefaultStore),
		LogLevel: coalesce(env("STUDYLOG_LOG_LEVEL"), deref(file.LogLevel), DefaultLogLevel),
		LogPath:  coalesce(env("STUDYLOG_LOG_PATH"), deref(file.LogPath), DefaultLogPath()),
	}

	cfg.HistoryWindow = DefaultHistoryWindow
	if file.HistoryWindow != nil {
		cfg.HistoryWindow = *file.HistoryWindow
	}
	if v := env("STUDYLOG_HISTORY_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STUDYLOG_HISTORY_WINDOW %q: %w", v, err)
		}
		cfg.HistoryWindow = n
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("history_window must be at least 1, got %d", c.HistoryWindow)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (use %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	return nil
}

// Location loads the configured timezone
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func loadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// loadEnv returns a lookup that prefers the process environment over the env file
func loadEnv(path string) (func(string) string, error) {
	fromFile := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		fromFile, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
	}
	return func(key string) string {
		return coalesce(os.Getenv(key), fromFile[key])
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
