package config

import (
	"os"
	"path/filepath"
)

const app = "ocreval"

func xdg(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func XDGConfigHome() string {
	return xdg("XDG_CONFIG_HOME", ".config")
}

func XDGDataHome() string {
	return xdg("XDG_DATA_HOME", ".local", "share")
}

func XDGCacheHome() string {
	return xdg("XDG_CACHE_HOME", ".cache")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), app, "config.toml")
}

// DefaultDBPath returns the default path of the run history database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), app, "history.db")
}

// DefaultCacheDir returns the directory of the report cache.
func DefaultCacheDir() string {
	return filepath.Join(XDGCacheHome(), app)
}
