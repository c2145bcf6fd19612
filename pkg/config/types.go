package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Catalog     CatalogConfig  `mapstructure:"catalog"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Playback    PlaybackConfig `mapstructure:"playback"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains the persistent store settings. An empty path
// selects the in-memory store.
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// CatalogConfig contains podcast catalog API settings
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	PopularURL        string        `mapstructure:"popular_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// CacheConfig contains per-call-site cache lifetimes
type CacheConfig struct {
	SearchTTL  time.Duration `mapstructure:"search_ttl"`
	LookupTTL  time.Duration `mapstructure:"lookup_ttl"`
	PopularTTL time.Duration `mapstructure:"popular_ttl"`
}

// PlaybackConfig contains playback engine timing settings
type PlaybackConfig struct {
	SkipBack          time.Duration `mapstructure:"skip_back"`
	SkipForward       time.Duration `mapstructure:"skip_forward"`
	LoadTimeout       time.Duration `mapstructure:"load_timeout"`
	ReadyPollInterval time.Duration `mapstructure:"ready_poll_interval"`
	SessionMaxAge     time.Duration `mapstructure:"session_max_age"`
}
