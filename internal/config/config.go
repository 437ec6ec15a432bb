package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SHOWCASE_BACKEND_BASE_URL.
const EnvPrefix = "SHOWCASE"

// Config represents the entire application configuration
type Config struct {
	Backend    BackendConfig    `mapstructure:"backend"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Sync       SyncConfig       `mapstructure:"sync"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// BackendConfig selects the remote source: an HTTP backend or a seed file
type BackendConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	SeedFile      string `mapstructure:"seed_file"`
	Timeout       string `mapstructure:"timeout"`
	UserAgent     string `mapstructure:"user_agent"`
	SkipTLSVerify bool   `mapstructure:"skip_tls_verify"`
}

// DatabaseConfig contains local store settings
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	CacheSizeMB   int    `mapstructure:"cache_size_mb"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms"`
}

// RepositoryConfig contains cache coordination settings
type RepositoryConfig struct {
	CoalesceReads bool `mapstructure:"coalesce_reads"`
}

// SyncConfig contains background synchronization settings
type SyncConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Interval        string `mapstructure:"interval"`
	TriggerInterval string `mapstructure:"trigger_interval"`
	Events          bool   `mapstructure:"events"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	BindAddr             string `mapstructure:"bind_addr"`
	EnableAdminAPI       bool   `mapstructure:"enable_admin_api"`
	AdminUsername        string `mapstructure:"admin_username"`
	AdminPassword        string `mapstructure:"admin_password"`
	ReadTimeout          string `mapstructure:"read_timeout"`
	WriteTimeout         string `mapstructure:"write_timeout"`
	IdleTimeout          string `mapstructure:"idle_timeout"`
	ForceRefreshInterval string `mapstructure:"force_refresh_interval"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from the specified file path. An empty path
// loads defaults and SHOWCASE_* environment overrides only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.seed_file", "")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.user_agent", "showcase")
	v.SetDefault("backend.skip_tls_verify", false)
	v.SetDefault("database.path", "showcase.db")
	v.SetDefault("database.cache_size_mb", 64)
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("repository.coalesce_reads", false)
	v.SetDefault("sync.enabled", true)
	v.SetDefault("sync.interval", "15m")
	v.SetDefault("sync.trigger_interval", "30s")
	v.SetDefault("sync.events", true)
	v.SetDefault("http.bind_addr", "0.0.0.0:8080")
	v.SetDefault("http.enable_admin_api", false)
	v.SetDefault("http.admin_username", "admin")
	v.SetDefault("http.admin_password", "")
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.force_refresh_interval", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Exactly one remote source
	switch {
	case c.Backend.BaseURL == "" && c.Backend.SeedFile == "":
		return errors.New("one of backend.base_url or backend.seed_file is required")
	case c.Backend.BaseURL != "" && c.Backend.SeedFile != "":
		return errors.New("backend.base_url and backend.seed_file are mutually exclusive")
	}
	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("backend.base_url must be an http(s) URL: %q", c.Backend.BaseURL)
		}
	}

	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Database.CacheSizeMB < 0 {
		return errors.New("database.cache_size_mb must not be negative")
	}
	if c.Database.BusyTimeoutMs < 0 {
		return errors.New("database.busy_timeout_ms must not be negative")
	}

	durations := map[string]string{
		"backend.timeout":             c.Backend.Timeout,
		"sync.interval":               c.Sync.Interval,
		"sync.trigger_interval":       c.Sync.TriggerInterval,
		"http.read_timeout":           c.HTTP.ReadTimeout,
		"http.write_timeout":          c.HTTP.WriteTimeout,
		"http.idle_timeout":           c.HTTP.IdleTimeout,
		"http.force_refresh_interval": c.HTTP.ForceRefreshInterval,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	if c.Sync.Enabled && c.Sync.GetInterval() <= 0 {
		return errors.New("sync.interval must be positive when sync is enabled")
	}

	if c.HTTP.EnableAdminAPI && c.HTTP.AdminPassword == "" {
		return errors.New("http.admin_password is required when the admin API is enabled")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetTimeout returns the backend request timeout as time.Duration
func (c *BackendConfig) GetTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	if d == 0 {
		return 10 * time.Second
	}
	return d
}

// GetInterval returns the sync interval as time.Duration
func (c *SyncConfig) GetInterval() time.Duration {
	d, _ := time.ParseDuration(c.Interval)
	return d
}

// GetTriggerInterval returns the minimum time between triggered syncs
func (c *SyncConfig) GetTriggerInterval() time.Duration {
	d, _ := time.ParseDuration(c.TriggerInterval)
	return d
}

// GetReadTimeout returns the read timeout as time.Duration
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout returns the write timeout as time.Duration
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetIdleTimeout returns the idle timeout as time.Duration
func (c *HTTPConfig) GetIdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	if d == 0 {
		return 60 * time.Second
	}
	return d
}

// GetForceRefreshInterval returns the per-scope throttle for forced reads.
// Zero disables throttling.
func (c *HTTPConfig) GetForceRefreshInterval() time.Duration {
	d, _ := time.ParseDuration(c.ForceRefreshInterval)
	return d
}
