// Package config loads runtime configuration for the pw client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "PW"
	configDirName = ".paywise"
)

// Config holds everything the client needs at startup. Values come from
// ~/.paywise/config.toml overridden by PW_* environment variables.
type Config struct {
	APIBaseURL   string        `mapstructure:"api_base_url" validate:"required,url"`
	SyncInterval time.Duration `mapstructure:"sync_interval" validate:"required,min=1s"`
	CacheDir     string        `mapstructure:"cache_dir" validate:"required"`
	CatalogPath  string        `mapstructure:"catalog_path"`
	LogLevel     string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// Load reads configuration, validates it, and returns it together with the
// viper instance so adapters can resolve their own keys from it.
func Load() (*Config, *viper.Viper, error) {
	// missing env files are fine
	_ = godotenv.Load(".env.local", ".env")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, configDirName)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:5000/api")
	v.SetDefault("sync_interval", 12*time.Second)
	v.SetDefault("cache_dir", filepath.Join(configDir, "state"))
	v.SetDefault("catalog_path", filepath.Join(configDir, "catalog.toml"))
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	// adapters read their paths from the same viper instance
	v.Set("cache.dir", cfg.CacheDir)

	return &cfg, v, nil
}
