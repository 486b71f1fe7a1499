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
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Billing   BillingConfig   `yaml:"billing"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	// Mode selects how tools are served: "stdio" or "http".
	Mode string `yaml:"mode"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// Username and Password seed the single-user credentials on first run.
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// APIToken guards the HTTP transport. Empty disables auth.
	APIToken string `yaml:"api_token"`
}

type BillingConfig struct {
	// TaxPercent is applied to invoice subtotals at submit time.
	TaxPercent float64 `yaml:"tax_percent"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Store: StoreConfig{
			Path: "atelierdesk.db",
		},
		Auth: AuthConfig{
			Username: "admin",
		},
		Billing: BillingConfig{
			TaxPercent: 19,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("ATELIER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ATELIER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ATELIER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATELIER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("ATELIER_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("ATELIER_STORE_PATH"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if user := os.Getenv("ATELIER_AUTH_USERNAME"); user != "" {
		cfg.Auth.Username = user
	}
	if pass := os.Getenv("ATELIER_AUTH_PASSWORD"); pass != "" {
		cfg.Auth.Password = pass
	}
	if token := os.Getenv("ATELIER_API_TOKEN"); token != "" {
		cfg.Auth.APIToken = token
	}
	if taxStr := os.Getenv("ATELIER_TAX_PERCENT"); taxStr != "" {
		tax, err := strconv.ParseFloat(taxStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATELIER_TAX_PERCENT: %w", err)
		}
		cfg.Billing.TaxPercent = tax
	}
	if level := os.Getenv("ATELIER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Transport.Mode != "stdio" && cfg.Transport.Mode != "http" {
		return Config{}, fmt.Errorf("invalid transport mode %q", cfg.Transport.Mode)
	}

	return cfg, nil
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
