package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	API       APIConfig
	Dashboard DashboardConfig
	Import    ImportConfig
	Log       LogConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
}

// APIConfig holds the connection options for the foods REST backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// DashboardConfig holds scheduler-related settings.
type DashboardConfig struct {
	RefreshSchedule string
	ExportSchedule  string
}

// ImportConfig points at the CSV drop folder. Empty disables the importer.
type ImportConfig struct {
	Dir string
}

// LogConfig selects where structured logs go while the terminal UI owns stdout.
type LogConfig struct {
	File string
}

// MongoDBConfig holds settings for the sync journal. Empty URI disables it.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to export the menu to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether menu export has been configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("FOODS_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("FOODS_API_TIMEOUT: %w", err)
	}

	retries, err := strconv.Atoi(getenvWithDefault("FOODS_API_RETRIES", "0"))
	if err != nil {
		return nil, fmt.Errorf("FOODS_API_RETRIES: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimSuffix(getenvWithDefault("FOODS_API_BASE_URL", "http://localhost:3333"), "/"),
			Timeout: timeout,
			Retries: retries,
		},
		Dashboard: DashboardConfig{
			RefreshSchedule: lookupWithDefault("FOODS_REFRESH_SCHEDULE", "@every 1m"),
			ExportSchedule:  os.Getenv("EXPORT_CRON_SCHEDULE"),
		},
		Import: ImportConfig{
			Dir: os.Getenv("FOODS_IMPORT_DIR"),
		},
		Log: LogConfig{
			File: getenvWithDefault("LOG_FILE", "foodboard.log"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "foodboard"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_MENU_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_MENU_RANGE", "Menu!A:E"),
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
		return errors.New("FOODS_API_BASE_URL must not be empty")
	}

	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("FOODS_API_BASE_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return errors.New("FOODS_API_TIMEOUT must be positive")
	}

	if c.API.Retries < 0 {
		return errors.New("FOODS_API_RETRIES must not be negative")
	}

	if c.Log.File == "" {
		return errors.New("LOG_FILE must not be empty")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	switch {
	case c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "":
		return errors.New("GOOGLE_SHEET_MENU_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
	case c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "":
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_MENU_ID")
	}

	if c.Sheets.Enabled() && c.Sheets.Range == "" {
		return errors.New("GOOGLE_SHEET_MENU_RANGE must not be empty")
	}

	if c.Dashboard.ExportSchedule != "" && !c.Sheets.Enabled() {
		return errors.New("EXPORT_CRON_SCHEDULE requires the Google Sheets export to be configured")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// lookupWithDefault differs from getenvWithDefault in that an explicitly empty
// variable is kept, which lets operators disable a schedule.
func lookupWithDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}
