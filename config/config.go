// Package config loads process configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     int            `mapstructure:"port"`
	Provider ProviderConfig `mapstructure:"provider"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

type ProviderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type PipelineConfig struct {
	// Deadline bounds one whole fetch→aggregate→sanitize run.
	Deadline time.Duration `mapstructure:"deadline"`
	// MaxConcurrentFetches caps in-flight per-expiration chain requests.
	MaxConcurrentFetches int `mapstructure:"max_concurrent_fetches"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads volsurface.yaml from the working directory when present and
// applies environment overrides (VOLSURFACE_*, plus bare PORT).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("provider.base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.user_agent", "Mozilla/5.0 (compatible; volsurface/1.0)")
	v.SetDefault("pipeline.deadline", 45*time.Second)
	v.SetDefault("pipeline.max_concurrent_fetches", 6)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", false)
	v.SetDefault("log.file_path", "logs/volsurface.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)

	v.SetConfigName("volsurface")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("volsurface")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Deployment platforms hand the listen port over as plain PORT.
	_ = v.BindEnv("port", "VOLSURFACE_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
