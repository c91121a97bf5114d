// Package config provides configuration loading and XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "studylog", "config.toml")
}

// DefaultLogPath returns where the log file goes when none is configured.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), "studylog", "studylog.log")
}

// envFilePath returns the env override file that sits next to the config file.
func envFilePath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "studylog.env")
}
