package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig locates the local document database holding the app state
// and the workout draft.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// CatalogConfig is the PostgreSQL connection for the shared exercise catalog.
type CatalogConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// AuthConfig holds the API key required for admin catalog writes.
type AuthConfig struct {
	AdminKey string `yaml:"admin_key"`
}

// DSN returns a PostgreSQL connection string for the catalog database.
func (c CatalogConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix LIFTLOG_ and underscore-separated paths:
//
//	LIFTLOG_SERVER_HOST, LIFTLOG_SERVER_PORT, LIFTLOG_STORE_DIR,
//	LIFTLOG_CATALOG_HOST, LIFTLOG_CATALOG_PORT, LIFTLOG_CATALOG_NAME,
//	LIFTLOG_CATALOG_USER, LIFTLOG_CATALOG_PASSWORD, LIFTLOG_CATALOG_SSLMODE,
//	LIFTLOG_AUTH_ADMIN_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTLOG_STORE_DIR"); v != "" {
		cfg.Store.Dir = v
	}
	if v := os.Getenv("LIFTLOG_CATALOG_HOST"); v != "" {
		cfg.Catalog.Host = v
	}
	if v := os.Getenv("LIFTLOG_CATALOG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.Port = port
		}
	}
	if v := os.Getenv("LIFTLOG_CATALOG_NAME"); v != "" {
		cfg.Catalog.Name = v
	}
	if v := os.Getenv("LIFTLOG_CATALOG_USER"); v != "" {
		cfg.Catalog.User = v
	}
	if v := os.Getenv("LIFTLOG_CATALOG_PASSWORD"); v != "" {
		cfg.Catalog.Password = v
	}
	if v := os.Getenv("LIFTLOG_CATALOG_SSLMODE"); v != "" {
		cfg.Catalog.SSLMode = v
	}
	if v := os.Getenv("LIFTLOG_AUTH_ADMIN_KEY"); v != "" {
		cfg.Auth.AdminKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Store.Dir == "" {
		return fmt.Errorf("store.dir is required")
	}
	if c.Catalog.Host == "" {
		return fmt.Errorf("catalog.host is required")
	}
	if c.Catalog.Port == 0 {
		return fmt.Errorf("catalog.port is required")
	}
	if c.Catalog.Name == "" {
		return fmt.Errorf("catalog.name is required")
	}
	if c.Catalog.User == "" {
		return fmt.Errorf("catalog.user is required")
	}
	if c.Auth.AdminKey == "" {
		return fmt.Errorf("auth.admin_key is required")
	}
	return nil
}
