package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TransportConfig selects "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// AuthConfig selects the identity provider. Provider "local" uses the
// embedded users table; "rest" talks to a hosted identity API.
type AuthConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "rosterdesk.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Auth: AuthConfig{
			Provider: "local",
		},
	}

	if path := os.Getenv("ROSTERDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ROSTERDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ROSTERDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ROSTERDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("ROSTERDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("ROSTERDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("ROSTERDESK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if provider := os.Getenv("ROSTERDESK_AUTH_PROVIDER"); provider != "" {
		cfg.Auth.Provider = provider
	}
	if key := os.Getenv("ROSTERDESK_AUTH_API_KEY"); key != "" {
		cfg.Auth.APIKey = key
	}
	if baseURL := os.Getenv("ROSTERDESK_AUTH_BASE_URL"); baseURL != "" {
		cfg.Auth.BaseURL = baseURL
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Auth.Provider {
	case "local":
	case "rest":
		if c.Auth.APIKey == "" {
			return fmt.Errorf("auth provider %q requires an api key", c.Auth.Provider)
		}
	default:
		return fmt.Errorf("invalid auth provider %q", c.Auth.Provider)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
