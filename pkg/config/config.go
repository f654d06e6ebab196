package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for generated links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:data-tracker.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Upstream feed fetch configuration"`
}

// FetchConfig holds upstream feed fetch settings
type FetchConfig struct {
	Timeout            time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-fetch timeout for upstream requests"`
	NewsURL            string        `yaml:"news_url" json:"news_url" jsonschema:"default=https://news.google.com,description=News search endpoint base URL"`
	RedditURL          string        `yaml:"reddit_url" json:"reddit_url" jsonschema:"default=https://www.reddit.com,description=Reddit search endpoint base URL"`
	MaxItems           int           `yaml:"max_items" json:"max_items" jsonschema:"default=25,minimum=1,description=Maximum items returned per source"`
	DefaultWindowHours int           `yaml:"default_window_hours" json:"default_window_hours" jsonschema:"default=24,minimum=1,description=Recency window in hours when the request omits one"`
}

// Load reads configuration from a YAML file. A missing path yields the
// built-in defaults, so the service runs with no config file at all.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:data-tracker.db?cache=shared&mode=rwc"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 10 * time.Second
	}
	if cfg.Fetch.NewsURL == "" {
		cfg.Fetch.NewsURL = "https://news.google.com"
	}
	if cfg.Fetch.RedditURL == "" {
		cfg.Fetch.RedditURL = "https://www.reddit.com"
	}
	if cfg.Fetch.MaxItems == 0 {
		cfg.Fetch.MaxItems = 25
	}
	if cfg.Fetch.DefaultWindowHours == 0 {
		cfg.Fetch.DefaultWindowHours = 24
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxItems < 1 {
		return fmt.Errorf("fetch max_items must be at least 1")
	}
	if cfg.Fetch.DefaultWindowHours < 1 {
		return fmt.Errorf("fetch default_window_hours must be at least 1")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the base URL for generated links
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetFetchConfig returns upstream fetch configuration
func (c *Config) GetFetchConfig() FetchConfig {
	return c.Fetch
}

// GetDefaultWindow returns the recency window in hours used when a request
// doesn't specify one
func (c *Config) GetDefaultWindow() int {
	return c.Fetch.DefaultWindowHours
}
