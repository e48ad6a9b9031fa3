// Package config handles loading and saving user configuration for skillx.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f3rmion/skillx/internal/match"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. SKILLX_ENDPOINT.
	EnvPrefix = "SKILLX"
	// FileName is the config file looked up inside the config directory.
	FileName = "config.yaml"

	defaultLogName = "skillx.log"
)

// Config holds all user configuration for skillx.
type Config struct {
	Endpoint  string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`
	HealthURL string        `yaml:"health_url,omitempty" mapstructure:"health_url" validate:"omitempty,url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	LogLevel  string        `yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile   string        `yaml:"log_file,omitempty" mapstructure:"log_file"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Endpoint: match.DefaultEndpoint,
		Timeout:  match.DefaultTimeout,
		LogLevel: "info",
	}
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("health_url", d.HealthURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from dir layered under env vars and any flags
// already bound on v. A missing config file or .env file is not an error.
func Load(v *viper.Viper, dir string) (*Config, error) {
	SetDefaults(v)

	if dir != "" {
		if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading .env file: %w", err)
		}

		v.SetConfigFile(filepath.Join(dir, FileName))
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogFile == "" && dir != "" {
		cfg.LogFile = filepath.Join(dir, defaultLogName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Save writes the configuration to a YAML file.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "skillx"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
