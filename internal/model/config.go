package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig holds settings for the embedded store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// BackupConfig holds export destination preferences. FallbackDir is
// tried when a write to Dir fails.
type BackupConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	FallbackDir string `mapstructure:"fallback_dir" yaml:"fallback_dir"`
}

// MaintenanceConfig holds housekeeping settings.
type MaintenanceConfig struct {
	// PurgeAfterDays is how long completed tasks are kept before the
	// periodic cleanup hard-deletes them.
	PurgeAfterDays int `mapstructure:"purge_after_days" yaml:"purge_after_days"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database    DatabaseConfig    `mapstructure:"database" yaml:"database"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Backup      BackupConfig      `mapstructure:"backup" yaml:"backup"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance" yaml:"maintenance"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/taskpad/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskpad", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "taskpad")
	}
	return &AppConfig{
		Database:    DatabaseConfig{Path: filepath.Join(dataDir, "taskpad.db")},
		Log:         LogConfig{Level: "info"},
		Backup:      BackupConfig{Dir: filepath.Join(dataDir, "backups"), FallbackDir: os.TempDir()},
		Maintenance: MaintenanceConfig{PurgeAfterDays: 30},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("backup.dir", defaults.Backup.Dir)
	v.SetDefault("backup.fallback_dir", defaults.Backup.FallbackDir)
	v.SetDefault("maintenance.purge_after_days", defaults.Maintenance.PurgeAfterDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("backup", cfg.Backup)
	v.Set("maintenance", cfg.Maintenance)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
