package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("PLAYER")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// Config file doesn't exist, which is fine - we'll use defaults
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		// The store is optional; without it sessions don't survive restarts
		fmt.Println("Warning: No database path configured, playback sessions will not persist")
	}

	if viper.GetDuration("playback.load_timeout") <= 0 {
		viper.Set("playback.load_timeout", 10*time.Second)
	}
	if viper.GetDuration("playback.ready_poll_interval") <= 0 {
		viper.Set("playback.ready_poll_interval", 250*time.Millisecond)
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Persistent store defaults
	viper.SetDefault("database.path", "./data/player.db")
	viper.SetDefault("database.log_queries", false)

	// Catalog defaults
	viper.SetDefault("catalog.base_url", "https://itunes.apple.com")
	viper.SetDefault("catalog.popular_url", "https://itunes.apple.com/us/rss/toppodcasts")
	viper.SetDefault("catalog.timeout", 10*time.Second)
	viper.SetDefault("catalog.requests_per_minute", 250)
	viper.SetDefault("catalog.burst", 5)
	viper.SetDefault("catalog.max_retries", 3)
	viper.SetDefault("catalog.retry_backoff", time.Second)
	viper.SetDefault("catalog.user_agent", "")

	// Cache lifetimes per call site
	viper.SetDefault("cache.search_ttl", 15*time.Minute)
	viper.SetDefault("cache.lookup_ttl", 30*time.Minute)
	viper.SetDefault("cache.popular_ttl", 60*time.Minute)

	// Playback defaults
	viper.SetDefault("playback.skip_back", 15*time.Second)
	viper.SetDefault("playback.skip_forward", 30*time.Second)
	viper.SetDefault("playback.load_timeout", 10*time.Second)
	viper.SetDefault("playback.ready_poll_interval", 250*time.Millisecond)
	viper.SetDefault("playback.session_max_age", 24*time.Hour)
}
