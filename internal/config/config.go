package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Server    ServerConfig  `mapstructure:"server"`
	Analyze   AnalyzeConfig `mapstructure:"analyze"`
	Archive   ArchiveConfig `mapstructure:"archive"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AnalyzeConfig represents batch analysis configuration
type AnalyzeConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ArchiveConfig represents S3-compatible result archiving configuration
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Prefix    string `mapstructure:"prefix"`
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Server: ServerConfig{
			Listen:          ":8080",
			MaxUploadBytes:  32 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Analyze: AnalyzeConfig{
			Concurrency: 4,
		},
		Archive: ArchiveConfig{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// Load builds the configuration from defaults, an optional config file, and
// GEOINT_* environment variables, in increasing precedence. When path is
// empty a geoint.yaml is searched in the working directory and
// $HOME/.config/geoint; a missing file is not an error in that case.
func Load(path string) (*Config, error) {
	v := viper.New()
	// Environment values arrive as strings; cast them to the default's type
	// so Unmarshal sees properly typed values.
	v.SetTypeByDefaultValue(true)

	defaults := New()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("server.listen", defaults.Server.Listen)
	v.SetDefault("server.max_upload_bytes", defaults.Server.MaxUploadBytes)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("analyze.concurrency", defaults.Analyze.Concurrency)
	v.SetDefault("archive.enabled", defaults.Archive.Enabled)
	v.SetDefault("archive.endpoint", defaults.Archive.Endpoint)
	v.SetDefault("archive.region", defaults.Archive.Region)
	v.SetDefault("archive.bucket", defaults.Archive.Bucket)
	v.SetDefault("archive.access_key", defaults.Archive.AccessKey)
	v.SetDefault("archive.secret_key", defaults.Archive.SecretKey)
	v.SetDefault("archive.use_ssl", defaults.Archive.UseSSL)
	v.SetDefault("archive.prefix", defaults.Archive.Prefix)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("geoint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/geoint")
	}

	v.SetEnvPrefix("GEOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
