// Package config resolves bookkeeper's runtime settings from defaults, an
// optional YAML config file, and BOOKKEEPER_* environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the CLI needs to wire the store and codec.
type Config struct {
	DBPath        string `mapstructure:"db_path"`
	ExportDir     string `mapstructure:"export_dir"`
	BackupDir     string `mapstructure:"backup_dir"`
	StrictLending bool   `mapstructure:"strict_lending"`
	LogLevel      string `mapstructure:"log_level"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookkeeper", "config.yml")
}

// Load reads the config. A missing config file is fine — defaults and
// environment cover everything.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", filepath.Join("data", "bookkeeper.db"))
	v.SetDefault("export_dir", "exports")
	v.SetDefault("backup_dir", "backups")
	v.SetDefault("strict_lending", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("BOOKKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("BOOKKEEPER_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
