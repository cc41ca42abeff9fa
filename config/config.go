// Package config reads the provider configuration, a TOML file whose
// values can be overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	StorageFile      = "file"
	StorageRethinkDB = "rethinkdb"
)

type ProviderConfig struct {
	Port                  string `toml:"port" json:"port"`
	LogLevel              string `toml:"log_level" json:"log_level"`
	ProviderFolder        string `toml:"provider_folder" json:"provider_folder"`
	Storage               string `toml:"storage" json:"storage"`
	SettingsFile          string `toml:"settings_file" json:"settings_file"`
	RethinkDB             string `toml:"rethink_db" json:"rethink_db"`
	Database              string `toml:"database" json:"database"`
	WatchSettings         bool   `toml:"watch_settings" json:"watch_settings"`
	CommandTimeoutSeconds int    `toml:"command_timeout_seconds" json:"command_timeout_seconds"`
}

func Default() ProviderConfig {
	return ProviderConfig{
		Port:                  "10001",
		LogLevel:              "info",
		ProviderFolder:        ".",
		Storage:               StorageFile,
		RethinkDB:             "localhost:28015",
		Database:              "gads",
		WatchSettings:         true,
		CommandTimeoutSeconds: 60,
	}
}

// Load reads path over the defaults, an empty path returns the defaults
func Load(path string) (ProviderConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file `%s`: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config file `%s`: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c ProviderConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.Storage {
	case StorageFile:
	case StorageRethinkDB:
		if c.RethinkDB == "" {
			return errors.New("rethink_db address is required for rethinkdb storage")
		}
	default:
		return fmt.Errorf("unknown storage `%s`, expected `%s` or `%s`", c.Storage, StorageFile, StorageRethinkDB)
	}
	if c.CommandTimeoutSeconds < 0 {
		return errors.New("command_timeout_seconds cannot be negative")
	}
	return nil
}

// SettingsPath defaults to <provider_folder>/conf/settings.json
func (c ProviderConfig) SettingsPath() string {
	if c.SettingsFile != "" {
		return c.SettingsFile
	}
	return filepath.Join(c.ProviderFolder, "conf", "settings.json")
}

func (c ProviderConfig) ProcessLogsDir() string {
	return filepath.Join(c.ProviderFolder, "logs", "emulators")
}

func (c ProviderConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

func (c ProviderConfig) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
