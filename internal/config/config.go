package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters;
// nothing else reads the environment mid-run.
type Config struct {
	Port string
	Env  string

	Snapshot SnapshotConfig
	Excel    ExcelConfig
	Hira     HiraConfig
	MFDS     MFDSConfig
	Worker   WorkerConfig
}

// SnapshotConfig locates the catalog document.
type SnapshotConfig struct {
	Path string
}

// ExcelConfig locates the HIRA release spreadsheet for file ingestion.
type ExcelConfig struct {
	Path string
}

// HiraConfig contains credentials and tuning for the reimbursement list
// API.
type HiraConfig struct {
	BaseURL   string
	APIKey    string
	PageSize  int
	MaxPages  int
	Timeout   time.Duration
	PageDelay time.Duration
}

// MFDSConfig contains credentials for the pill identification (image)
// API. Optional; image lookup is disabled without a key.
type MFDSConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// WorkerConfig contains interval configuration for the background
// catalog refresh. A zero interval disables the worker.
type WorkerConfig struct {
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file
// exists in the working directory, it will be loaded first. It returns a
// populated Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that CI
	// environments relying solely on real environment variables keep
	// working.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	cfg.Snapshot = SnapshotConfig{
		Path: getEnv("SNAPSHOT_PATH", "public/drugs.json"),
	}

	cfg.Excel = ExcelConfig{
		Path: getEnv("EXCEL_PATH", "data/data.xlsx"),
	}

	cfg.Hira = HiraConfig{
		BaseURL:  getEnv("HIRA_BASE_URL", ""),
		APIKey:   getEnv("HIRA_API_KEY", ""),
		PageSize: getEnvInt("HIRA_PAGE_SIZE", 100),
		MaxPages: getEnvInt("HIRA_MAX_PAGES", 1000),
	}

	cfg.MFDS = MFDSConfig{
		BaseURL: getEnv("MFDS_BASE_URL", ""),
		APIKey:  getEnv("MFDS_API_KEY", ""),
	}

	var err error
	if cfg.Hira.Timeout, err = parseDurationEnv("HIRA_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid HIRA_TIMEOUT: %w", err)
	}
	if cfg.Hira.PageDelay, err = parseDurationEnv("HIRA_PAGE_DELAY", "50ms"); err != nil {
		return nil, fmt.Errorf("invalid HIRA_PAGE_DELAY: %w", err)
	}
	if cfg.MFDS.Timeout, err = parseDurationEnv("MFDS_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid MFDS_TIMEOUT: %w", err)
	}
	if cfg.Worker.RefreshInterval, err = parseDurationEnv("REFRESH_INTERVAL", "0s"); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	return cfg, nil
}

// RequireHiraKey validates the configuration needed for API collection.
// It is checked before any network call so a missing key fails with a
// clear remediation hint instead of a thousand 403 pages.
func (c *Config) RequireHiraKey() error {
	if c.Hira.APIKey == "" {
		return errors.New("HIRA_API_KEY is not set: request a key for the HIRA drug list service at data.go.kr and export HIRA_API_KEY")
	}
	return nil
}

// MaskedHiraKey returns the API key with its middle hidden, safe for
// startup logs.
func (c *Config) MaskedHiraKey() string {
	k := c.Hira.APIKey
	if len(k) <= 8 {
		return "****"
	}
	return k[:4] + "****" + k[len(k)-4:]
}

// getEnv returns the value of an environment variable or a default if
// empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer
// or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as
// time.Duration. If the variable is empty, it falls back to the provided
// default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
