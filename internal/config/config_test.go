package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_CONNECTION_STRING", "override.db")
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("EMAIL_PROVIDER", "sendgrid")
	t.Setenv("SENDGRID_API_KEY", "overrideKey")
	t.Setenv("REMINDERS_CRON", "*/5 * * * *")
	t.Setenv("CATALOG_FILE", "other.yaml")

	cfg, err := loadConfig("../../configs/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "override.db", cfg.DB.ConnectionString)
	assert.Equal(t, 5*time.Second, cfg.DB.BusyTimeout)
	assert.Equal(t, ":9999", cfg.HTTP.Address)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, EmailProviderSendgrid, cfg.Email.Provider)
	assert.Equal(t, "overrideKey", cfg.Email.SendgridAPIKey)
	assert.Equal(t, "*/5 * * * *", cfg.Reminders.Cron)
	assert.Equal(t, 5*time.Minute, cfg.Reminders.RunTimeout)
	assert.Equal(t, "other.yaml", cfg.Catalog.File)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, []StaticRecipient{
		{ID: "1", Email: "student1@example.com"},
		{ID: "2", Email: "student2@example.com"},
	}, cfg.Reminders.StaticRecipients)
}

func Test_Config_ValidationErrorsAreAggregated(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("db:\n  connection_string: \"\"\nemail:\n  provider: pigeon\n  from_address: a@b.c\n")
	require.NoError(t, os.WriteFile(file, content, 0644))
	t.Setenv("DB_CONNECTION_STRING", "")
	t.Setenv("EMAIL_PROVIDER", "")

	_, err := loadConfig(file)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBConfig")
	assert.Contains(t, err.Error(), "EmailConfig")
}

func Test_SheetsConfig_RequiresCredentialsWhenEnabled(t *testing.T) {
	cfg := SheetsConfig{SpreadsheetID: "sheet", SheetName: "Sheet1", MaxRequestsPerSecond: 1}
	assert.Error(t, cfg.validate())

	cfg.CredentialsFile = "creds.json"
	assert.NoError(t, cfg.validate())
}

func Test_DBConfig_DSN_AppendsPragmas(t *testing.T) {
	cfg := DBConfig{ConnectionString: "uninotify.db", BusyTimeout: 5 * time.Second}
	assert.Equal(t, "uninotify.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.DSN())

	cfg = DBConfig{ConnectionString: "file:uninotify.db?cache=shared"}
	assert.Equal(t, "file:uninotify.db?cache=shared&_pragma=foreign_keys(1)", cfg.DSN())

	assert.Error(t, DBConfig{ConnectionString: "x.db", BusyTimeout: -time.Second}.validate())
}
