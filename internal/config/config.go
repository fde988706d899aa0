// Package config loads the application configuration from environment
// variables (prefix FINPULSE) layered over an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DatasetConfig locates the survey input file.
type DatasetConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// Load builds the configuration in three layers: built-in defaults, then an
// optional YAML file, then environment variables. Later layers win; env vars
// only override when explicitly set.
func Load() (*Config, error) {
	cfg := *Default()

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		merge(&cfg, fileCfg)
	}

	if err := envconfig.Process("FINPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays the set fields of the file config onto cfg.
func merge(cfg, fileCfg *Config) {
	if fileCfg.Server.Port != 0 {
		cfg.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Server.ReadTimeout != 0 {
		cfg.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if fileCfg.Server.WriteTimeout != 0 {
		cfg.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if fileCfg.Server.IdleTimeout != 0 {
		cfg.Server.IdleTimeout = fileCfg.Server.IdleTimeout
	}
	if fileCfg.Server.ShutdownTimeout != 0 {
		cfg.Server.ShutdownTimeout = fileCfg.Server.ShutdownTimeout
	}
	if len(fileCfg.Security.AllowedOrigins) > 0 {
		cfg.Security.AllowedOrigins = fileCfg.Security.AllowedOrigins
	}
	if fileCfg.Security.RateLimit.RPS != 0 {
		cfg.Security.RateLimit.RPS = fileCfg.Security.RateLimit.RPS
	}
	if fileCfg.Security.RateLimit.Burst != 0 {
		cfg.Security.RateLimit.Burst = fileCfg.Security.RateLimit.Burst
	}
	if fileCfg.Logging.Level != "" {
		cfg.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Output != "" {
		cfg.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Logging.FilePath != "" {
		cfg.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if fileCfg.Dataset.Path != "" {
		cfg.Dataset.Path = fileCfg.Dataset.Path
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path must be configured")
	}
	switch filepath.Ext(c.Dataset.Path) {
	case ".csv", ".xlsx", ".xlsm", ".parquet":
	default:
		return fmt.Errorf("unsupported dataset extension: %q", filepath.Ext(c.Dataset.Path))
	}
	return nil
}

func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Dataset: DatasetConfig{
			Path: "data/fintech_usage_africa.csv",
		},
	}
}
