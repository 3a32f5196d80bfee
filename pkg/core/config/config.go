// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Auth        AuthConfig        `yaml:"auth"`
	ConfigStore ConfigStoreConfig `yaml:"config_store"`
	Actions     ActionsConfig     `yaml:"actions"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig contains request authentication configuration.
// Mode is "jwt" or "none" (development only).
type AuthConfig struct {
	Mode      string `yaml:"mode"`
	JWTSecret string `yaml:"jwt_secret"`
}

// ConfigStoreConfig selects the runtime configuration store backend.
// Type is "memory" (default, seeded with sample servers), "sqlite" or
// "postgres"; DSN is the file path or connection string.
type ConfigStoreConfig struct {
	Type string `yaml:"type"`
	DSN  string `yaml:"dsn"`
}

// ActionsConfig contains action runner configuration
type ActionsConfig struct {
	RunnerURL string        `yaml:"runner_url"`
	APIKey    string        `yaml:"api_key"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{}
	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg
}

// applyEnvOverrides lets environment variables win over file config, which
// is how secrets reach deployed instances.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MCP_GATEWAY_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
		cfg.Auth.Mode = "jwt"
	}
	if v := os.Getenv("MCP_GATEWAY_CONFIG_STORE_DSN"); v != "" {
		cfg.ConfigStore.DSN = v
	}
	if v := os.Getenv("MCP_GATEWAY_CONFIG_STORE_TYPE"); v != "" {
		cfg.ConfigStore.Type = v
	}
	if v := os.Getenv("ACTIONS_RUNNER_URL"); v != "" {
		cfg.Actions.RunnerURL = v
	}
	if v := os.Getenv("ACTIONS_API_KEY"); v != "" {
		cfg.Actions.APIKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}
	if cfg.Auth.Mode == "" {
		cfg.Auth.Mode = "none"
	}
	if cfg.ConfigStore.Type == "" {
		cfg.ConfigStore.Type = "memory"
	}
	if cfg.Actions.Timeout == 0 {
		cfg.Actions.Timeout = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
