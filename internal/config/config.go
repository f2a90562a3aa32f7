package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "burrow.db"
)

type Config struct {
	DBPath       string `toml:"db_path"`
	DefaultView  string `toml:"default_view"`
	UpcomingDays int    `toml:"upcoming_days"`
}

// LoadOrCreate reads the config at path, writing one with defaults on
// first run. Missing fields fall back to their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = "inbox"
	}
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = 7
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:       DefaultDBName,
		DefaultView:  "inbox",
		UpcomingDays: 7,
	}
}
