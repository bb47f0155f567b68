package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	tempmail "github.com/tempmail/client-go"
)

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level       string
	Development bool
	File        string
	MaxSizeMB   int
	MaxBackups  int
}

// Config is the CLI configuration, resolved from flags, environment,
// an optional tempmail.yaml and defaults, in that order.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Address     string
	Concurrency int
	Log         LogConfig
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:     tempmail.DefaultBaseURL,
		Timeout:     30 * time.Second,
		Concurrency: 4,
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LoadConfig reads TEMPMAIL_* environment variables, a .env file in the
// working directory and tempmail.yaml from configDirs.
func LoadConfig(configDirs ...string) (Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	def := DefaultConfig()
	v := viper.New()
	v.SetEnvPrefix("tempmail")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("timeout", def.Timeout.String())
	v.SetDefault("address", "")
	v.SetDefault("concurrency", def.Concurrency)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", def.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", def.Log.MaxBackups)

	v.SetConfigName("tempmail")
	v.SetConfigType("yaml")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}
	if len(configDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid timeout: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %v", timeout)
	}

	concurrency := v.GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = def.Concurrency
	}

	cfg := Config{
		BaseURL:     v.GetString("base_url"),
		Timeout:     timeout,
		Address:     v.GetString("address"),
		Concurrency: concurrency,
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
			File:        v.GetString("log.file"),
			MaxSizeMB:   v.GetInt("log.max_size_mb"),
			MaxBackups:  v.GetInt("log.max_backups"),
		},
	}
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("base_url must not be empty")
	}
	return cfg, nil
}

// defaultConfigDirs lists where tempmail.yaml is looked up.
func defaultConfigDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "tempmail"))
	}
	return dirs
}
