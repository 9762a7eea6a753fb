package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration, read from
// ~/.config/remindd/config.yaml.
type Config struct {
	// DataFile is the path of the JSON task collection.
	DataFile string `mapstructure:"data_file" yaml:"data_file"`

	// HistoryFile is the path of the SQLite notification history database.
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`

	// TickIntervalSec is how often (in seconds) tasks are re-evaluated.
	TickIntervalSec int `mapstructure:"tick_interval_sec" yaml:"tick_interval_sec"`

	// DesktopNotifications enables OS-level notifications alongside the
	// in-app prompt. Off by default.
	DesktopNotifications bool `mapstructure:"desktop_notifications" yaml:"desktop_notifications"`

	// Theme selects the UI color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// DefaultPath returns the default configuration file location,
// ~/.config/remindd/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "remindd", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "remindd")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	dir := defaultDataDir()
	return &Config{
		DataFile:             filepath.Join(dir, "tasks.json"),
		HistoryFile:          filepath.Join(dir, "history.db"),
		TickIntervalSec:      1,
		DesktopNotifications: false,
		Theme:                "default",
	}
}

// Load reads the YAML configuration at path. A missing file is not an
// error: defaults are returned so a fresh install needs no setup.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("history_file", def.HistoryFile)
	v.SetDefault("tick_interval_sec", def.TickIntervalSec)
	v.SetDefault("desktop_notifications", def.DesktopNotifications)
	v.SetDefault("theme", def.Theme)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.TickIntervalSec <= 0 {
		cfg.TickIntervalSec = def.TickIntervalSec
	}
	return cfg, nil
}
