// Package config reads the TOML configuration file and resolves it against
// built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ughe/ocreval/doc"
)

// FileConfig is the TOML file. Unset keys stay nil so that they can be told
// apart from zero values.
type FileConfig struct {
	Accuracy AccuracyConfig `toml:"accuracy"`
	Batch    BatchConfig    `toml:"batch"`
	Cache    CacheConfig    `toml:"cache"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

type AccuracyConfig struct {
	Normalize     *string `toml:"normalize"`
	EnsureNewline *bool   `toml:"ensure-newline"`
}

type BatchConfig struct {
	Workers *int `toml:"workers"`
}

type CacheConfig struct {
	Enabled *bool   `toml:"enabled"`
	Dir     *string `toml:"dir"`
}

type HistoryConfig struct {
	Enabled *bool   `toml:"enabled"`
	DB      *string `toml:"db"`
}

type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// Settings is the configuration every command runs with.
type Settings struct {
	Doc            doc.Options
	Workers        int
	CacheEnabled   bool
	CacheDir       string
	HistoryEnabled bool
	DBPath         string
	LogLevel       string
}

func Defaults() Settings {
	return Settings{
		Doc:          doc.Options{Form: doc.None, EnsureNewline: true},
		CacheEnabled: true,
		CacheDir:     DefaultCacheDir(),
		DBPath:       DefaultDBPath(),
		LogLevel:     "info",
	}
}

// Resolve applies the set keys of the file on top of the defaults.
func (c FileConfig) Resolve() (Settings, error) {
	s := Defaults()
	if v := c.Accuracy.Normalize; v != nil {
		form, err := doc.ParseForm(*v)
		if err != nil {
			return Settings{}, err
		}
		s.Doc.Form = form
	}
	if v := c.Accuracy.EnsureNewline; v != nil {
		s.Doc.EnsureNewline = *v
	}
	if v := c.Batch.Workers; v != nil {
		if *v < 0 {
			return Settings{}, fmt.Errorf("batch.workers must not be negative, got %d", *v)
		}
		s.Workers = *v
	}
	if v := c.Cache.Enabled; v != nil {
		s.CacheEnabled = *v
	}
	if v := c.Cache.Dir; v != nil && *v != "" {
		s.CacheDir = *v
	}
	if v := c.History.Enabled; v != nil {
		s.HistoryEnabled = *v
	}
	if v := c.History.DB; v != nil && *v != "" {
		s.DBPath = *v
	}
	if v := c.Log.Level; v != nil {
		switch *v {
		case "debug", "info", "warn", "error":
			s.LogLevel = *v
		default:
			return Settings{}, fmt.Errorf("unknown log level %q", *v)
		}
	}
	return s, nil
}

// Load reads the file at path and resolves it.
func Load(path string) (Settings, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	return cfg.Resolve()
}
