package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full console configuration surface.
type Config struct {
	API       APIConfig
	Session   SessionConfig
	Bills     BillsConfig
	Dashboard DashboardConfig
}

// APIConfig locates the remote garage API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds where the login session is persisted.
type SessionConfig struct {
	Path string
}

// BillsConfig holds where downloaded bills are written.
type BillsConfig struct {
	Dir string
}

// DashboardConfig holds dashboard-related options.
type DashboardConfig struct {
	RecentLimit int
	RefreshCron string
	AutoRefresh bool
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes
		// from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getenvWithDefault("GARAGE_API_BASE_URL", "http://localhost:8080"),
			Timeout: time.Duration(getenvIntWithDefault("GARAGE_API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			Path: getenvWithDefault("GARAGE_SESSION_PATH", defaultSessionPath()),
		},
		Bills: BillsConfig{
			Dir: getenvWithDefault("GARAGE_BILLS_DIR", "."),
		},
		Dashboard: DashboardConfig{
			RecentLimit: getenvIntWithDefault("DASHBOARD_RECENT_LIMIT", 8),
			RefreshCron: getenvWithDefault("DASHBOARD_REFRESH_CRON", "*/5 * * * *"),
			AutoRefresh: getenvWithDefault("DASHBOARD_AUTO_REFRESH", "true") == "true",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.API.BaseURL == "" {
		return errors.New("GARAGE_API_BASE_URL must not be empty")
	}
	if c.API.Timeout <= 0 {
		return errors.New("GARAGE_API_TIMEOUT_SECONDS must be positive")
	}
	if c.Session.Path == "" {
		return errors.New("GARAGE_SESSION_PATH must not be empty")
	}
	if c.Bills.Dir == "" {
		return errors.New("GARAGE_BILLS_DIR must not be empty")
	}
	if c.Dashboard.RecentLimit <= 0 {
		return errors.New("DASHBOARD_RECENT_LIMIT must be positive")
	}
	if c.Dashboard.RefreshCron == "" {
		return errors.New("DASHBOARD_REFRESH_CRON must not be empty")
	}

	return nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".garage-console", "session.json")
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
