package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: https://api.example.com/v1\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.BaseURL != "https://api.example.com/v1" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Database.Path != "showcase.db" {
		t.Errorf("Database.Path = %q, want showcase.db", cfg.Database.Path)
	}
	if cfg.Database.BusyTimeoutMs != 5000 {
		t.Errorf("Database.BusyTimeoutMs = %d, want 5000", cfg.Database.BusyTimeoutMs)
	}
	if cfg.Repository.CoalesceReads {
		t.Error("Repository.CoalesceReads should default to false")
	}
	if got := cfg.Sync.GetInterval(); got != 15*time.Minute {
		t.Errorf("Sync.GetInterval() = %v, want 15m", got)
	}
	if got := cfg.HTTP.GetForceRefreshInterval(); got != 10*time.Second {
		t.Errorf("HTTP.GetForceRefreshInterval() = %v, want 10s", got)
	}
	if got := cfg.Backend.GetTimeout(); got != 10*time.Second {
		t.Errorf("Backend.GetTimeout() = %v, want 10s", got)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
backend:
  seed_file: ./seed.yaml
database:
  path: /tmp/catalog.db
  cache_size_mb: 16
repository:
  coalesce_reads: true
sync:
  enabled: false
  interval: 1h
http:
  bind_addr: 127.0.0.1:9090
  enable_admin_api: true
  admin_password: s3cret
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.SeedFile != "./seed.yaml" {
		t.Errorf("Backend.SeedFile = %q", cfg.Backend.SeedFile)
	}
	if cfg.Database.CacheSizeMB != 16 {
		t.Errorf("Database.CacheSizeMB = %d, want 16", cfg.Database.CacheSizeMB)
	}
	if !cfg.Repository.CoalesceReads {
		t.Error("Repository.CoalesceReads = false, want true")
	}
	if cfg.Sync.Enabled {
		t.Error("Sync.Enabled = true, want false")
	}
	if cfg.HTTP.BindAddr != "127.0.0.1:9090" || !cfg.HTTP.EnableAdminAPI {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: https://api.example.com\n")
	t.Setenv("SHOWCASE_DATABASE_PATH", "/data/env.db")
	t.Setenv("SHOWCASE_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/data/env.db" {
		t.Errorf("Database.Path = %q, want /data/env.db", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SHOWCASE_BACKEND_SEED_FILE", "seed.json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend.SeedFile != "seed.json" {
		t.Errorf("Backend.SeedFile = %q, want seed.json", cfg.Backend.SeedFile)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Backend:  BackendConfig{BaseURL: "https://api.example.com", Timeout: "10s"},
			Database: DatabaseConfig{Path: "showcase.db"},
			Sync:     SyncConfig{Enabled: true, Interval: "15m", TriggerInterval: "30s"},
			HTTP: HTTPConfig{
				ReadTimeout:          "30s",
				WriteTimeout:         "30s",
				IdleTimeout:          "60s",
				ForceRefreshInterval: "0s",
			},
			Logging: LoggingConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "no source",
			mutate:  func(c *Config) { c.Backend.BaseURL = "" },
			wantErr: "one of backend.base_url or backend.seed_file",
		},
		{
			name:    "both sources",
			mutate:  func(c *Config) { c.Backend.SeedFile = "seed.json" },
			wantErr: "mutually exclusive",
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.Backend.BaseURL = "ftp://example.com" },
			wantErr: "http(s) URL",
		},
		{
			name:    "bad duration",
			mutate:  func(c *Config) { c.Sync.Interval = "soon" },
			wantErr: "invalid sync.interval",
		},
		{
			name:    "zero interval with sync on",
			mutate:  func(c *Config) { c.Sync.Interval = "0s" },
			wantErr: "sync.interval must be positive",
		},
		{
			name:   "zero interval with sync off",
			mutate: func(c *Config) { c.Sync.Enabled = false; c.Sync.Interval = "0s" },
		},
		{
			name:    "admin without password",
			mutate:  func(c *Config) { c.HTTP.EnableAdminAPI = true },
			wantErr: "admin_password",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging.level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
