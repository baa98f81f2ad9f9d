package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server" jsonschema:"description=HTTP server configuration"`
	Stream  StreamConfig  `yaml:"stream" json:"stream" jsonschema:"description=Push stream connection"`
	Feed    FeedConfig    `yaml:"feed" json:"feed" jsonschema:"description=Live feed buffer"`
	API     APIConfig     `yaml:"api" json:"api" jsonschema:"description=Polled article API"`
	Archive ArchiveConfig `yaml:"archive" json:"archive" jsonschema:"description=Local archive of live articles"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// StreamConfig holds push connection settings
type StreamConfig struct {
	URL                  string        `yaml:"url" json:"url" jsonschema:"required,description=Websocket URL of the push endpoint"`
	ReconnectDelay       time.Duration `yaml:"reconnect_delay" json:"reconnect_delay" jsonschema:"default=3s,description=Fixed delay between reconnect attempts"`
	MaxReconnectAttempts int           `yaml:"max_reconnect_attempts" json:"max_reconnect_attempts" jsonschema:"default=5,minimum=1,description=Reconnect attempts before giving up"`
	PingInterval         time.Duration `yaml:"ping_interval" json:"ping_interval" jsonschema:"default=30s,description=Keepalive ping interval"`
	PongTimeout          time.Duration `yaml:"pong_timeout" json:"pong_timeout" jsonschema:"default=0s,description=Drop the connection if no pong arrives within this time, 0 disables"`
	DialTimeout          time.Duration `yaml:"dial_timeout" json:"dial_timeout" jsonschema:"default=10s,description=Connection establishment timeout"`
	Topics               []string      `yaml:"topics" json:"topics" jsonschema:"description=Topics subscribed after every connect"`
}

// FeedConfig holds live feed settings
type FeedConfig struct {
	Capacity int `yaml:"capacity" json:"capacity" jsonschema:"default=100,minimum=1,description=Number of most recent live articles kept"`
}

// APIConfig holds polled API settings
type APIConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url" jsonschema:"required,description=Base URL of the article API"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
	PollInterval  time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=60s,description=Periodic refresh interval"`
	RetryAttempts int           `yaml:"retry_attempts" json:"retry_attempts" jsonschema:"default=3,minimum=1,description=Attempts per request"`
	Limit         int           `yaml:"limit" json:"limit" jsonschema:"default=50,minimum=1,description=Articles per poll"`
}

// ArchiveConfig holds local archive settings
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Keep live articles in a local SQLite archive"`
	DSN     string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newspulse.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000),description=Database connection string"`
	Keep    int    `yaml:"keep" json:"keep" jsonschema:"default=1000,description=Number of newest archived articles kept"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary, log and go on
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// stream
	if cfg.Stream.ReconnectDelay == 0 {
		cfg.Stream.ReconnectDelay = 3 * time.Second
	}
	if cfg.Stream.MaxReconnectAttempts == 0 {
		cfg.Stream.MaxReconnectAttempts = 5
	}
	if cfg.Stream.PingInterval == 0 {
		cfg.Stream.PingInterval = 30 * time.Second
	}
	if cfg.Stream.DialTimeout == 0 {
		cfg.Stream.DialTimeout = 10 * time.Second
	}

	// feed
	if cfg.Feed.Capacity == 0 {
		cfg.Feed.Capacity = 100
	}

	// api
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 15 * time.Second
	}
	if cfg.API.PollInterval == 0 {
		cfg.API.PollInterval = 60 * time.Second
	}
	if cfg.API.RetryAttempts == 0 {
		cfg.API.RetryAttempts = 3
	}
	if cfg.API.Limit == 0 {
		cfg.API.Limit = 50
	}

	// archive
	if cfg.Archive.DSN == "" {
		cfg.Archive.DSN = "file:newspulse.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	}
	if cfg.Archive.Keep == 0 {
		cfg.Archive.Keep = 1000
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Stream.URL == "" {
		return errors.New("stream.url is required")
	}
	u, err := url.Parse(cfg.Stream.URL)
	if err != nil {
		return fmt.Errorf("stream.url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("stream.url must be ws:// or wss://, got %q", cfg.Stream.URL)
	}
	if cfg.Stream.MaxReconnectAttempts < 1 {
		return errors.New("stream.max_reconnect_attempts must be at least 1")
	}
	if cfg.Stream.ReconnectDelay < 0 || cfg.Stream.PongTimeout < 0 {
		return errors.New("stream durations must be non-negative")
	}
	if cfg.Stream.PongTimeout > 0 && cfg.Stream.PongTimeout >= cfg.Stream.PingInterval {
		return errors.New("stream.pong_timeout must be shorter than stream.ping_interval")
	}

	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if u, err := url.Parse(cfg.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url must be http:// or https://, got %q", cfg.API.BaseURL)
	}
	if cfg.API.RetryAttempts < 1 {
		return errors.New("api.retry_attempts must be at least 1")
	}
	if cfg.API.PollInterval < time.Second {
		return errors.New("api.poll_interval must be at least 1 second")
	}

	if cfg.Feed.Capacity < 1 {
		return errors.New("feed.capacity must be at least 1")
	}
	if cfg.Archive.Keep < 0 {
		return errors.New("archive.keep must be non-negative")
	}

	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
