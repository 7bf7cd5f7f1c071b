// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by FromEnv and MergeWithDefaults
const (
	DefaultPort            = 5000
	DefaultMaxUploadBytes  = 16 << 20
	DefaultRedisAddr       = ""
	DefaultKeywordCacheTTL = "24h"
)

// Config represents the server and CLI configuration. It can be loaded from a
// JSON file or from the environment; all fields are optional.
type Config struct {
	// Server
	Port           int      `json:"port,omitempty"`             // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"`  // CORS origins, "*" when empty
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty"` // Upload size limit

	// Storage
	DatabaseURL     string `json:"database_url,omitempty"`      // PostgreSQL connection URL, analyses are not stored when empty
	RedisAddr       string `json:"redis_addr,omitempty"`        // Redis host:port, keyword cache disabled when empty
	RedisPassword   string `json:"redis_password,omitempty"`    // Redis password
	RedisDB         int    `json:"redis_db,omitempty"`          // Redis logical database
	KeywordCacheTTL string `json:"keyword_cache_ttl,omitempty"` // Go duration string, e.g. "24h"

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables, using defaults for
// anything unset or unparsable.
func FromEnv() Config {
	return Config{
		Port:            getEnvInt("PORT", DefaultPort),
		AllowedOrigins:  splitList(getEnvString("CORS_ALLOWED_ORIGINS", "")),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		DatabaseURL:     getEnvString("DATABASE_URL", ""),
		RedisAddr:       getEnvString("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:   getEnvString("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		KeywordCacheTTL: getEnvString("KEYWORD_CACHE_TTL", DefaultKeywordCacheTTL),
		UseBrowser:      getEnvBool("USE_BROWSER", false),
		Verbose:         getEnvBool("VERBOSE", false),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.KeywordCacheTTL != "" {
		ttl, err := time.ParseDuration(c.KeywordCacheTTL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'keyword_cache_ttl': %w", err)
		}
		if ttl < 0 {
			return fmt.Errorf("config error: 'keyword_cache_ttl' must be non-negative")
		}
	}
	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("config error: 'database_url' must be a postgres:// URL")
	}

	return nil
}

// CacheTTL returns the parsed keyword cache TTL, or zero when unset or invalid.
// Call Validate first to reject invalid values.
func (c *Config) CacheTTL() time.Duration {
	ttl, err := time.ParseDuration(c.KeywordCacheTTL)
	if err != nil {
		return 0
	}
	return ttl
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply environment values beneath config file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.KeywordCacheTTL == "" {
		result.KeywordCacheTTL = defaults.KeywordCacheTTL
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping blank entries
func splitList(list string) []string {
	if list == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
