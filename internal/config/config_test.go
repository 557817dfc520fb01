package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FOODS_API_BASE_URL", "FOODS_API_TIMEOUT", "FOODS_API_RETRIES",
		"FOODS_REFRESH_SCHEDULE", "EXPORT_CRON_SCHEDULE", "FOODS_IMPORT_DIR", "LOG_FILE",
		"MONGODB_URI", "MONGODB_DB_NAME",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_MENU_ID", "GOOGLE_SHEET_MENU_RANGE",
	} {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3333", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.Retries)
	assert.Equal(t, "@every 1m", cfg.Dashboard.RefreshSchedule)
	assert.Equal(t, "foodboard.log", cfg.Log.File)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Empty(t, cfg.MongoDB.URI)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "FOODS_API_BASE_URL=https://api.example.com/\nFOODS_API_TIMEOUT=3s\nFOODS_REFRESH_SCHEDULE=\nGOOGLE_SHEETS_CREDENTIALS_PATH=creds.json\nGOOGLE_SHEET_MENU_ID=sheet-1\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Empty(t, cfg.Dashboard.RefreshSchedule, "explicit empty schedule disables refresh")
	assert.True(t, cfg.Sheets.Enabled())
	assert.Equal(t, "Menu!A:E", cfg.Sheets.Range)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{BaseURL: "http://localhost:3333", Timeout: time.Second},
			Log: LogConfig{File: "x.log"},
		}
	}

	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"empty base url":        func(c *Config) { c.API.BaseURL = "" },
		"non-http base url":     func(c *Config) { c.API.BaseURL = "ftp://foods" },
		"zero timeout":          func(c *Config) { c.API.Timeout = 0 },
		"negative retries":      func(c *Config) { c.API.Retries = -1 },
		"sheet id only":         func(c *Config) { c.Sheets.SpreadsheetID = "abc" },
		"credentials only":      func(c *Config) { c.Sheets.CredentialsPath = "creds.json" },
		"export without sheets": func(c *Config) { c.Dashboard.ExportSchedule = "@daily" },
		"mongo without db":      func(c *Config) { c.MongoDB.URI = "mongodb://localhost" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
