package config

import (
	"fmt"
	"time"
)

// SheetsConfig points at the spreadsheet holding the university snapshot.
// When SpreadsheetID is empty the local database is used as the university source.
type SheetsConfig struct {
	SpreadsheetID        string        `mapstructure:"spreadsheet_id"`
	SheetName            string        `mapstructure:"sheet_name"`
	CredentialsFile      string        `mapstructure:"credentials_file"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

func (config SheetsConfig) Enabled() bool {
	return config.SpreadsheetID != ""
}

func (config SheetsConfig) validate() error {
	if !config.Enabled() {
		return nil
	}
	if config.CredentialsFile == "" {
		return fmt.Errorf("missing variable: credentials_file")
	}
	if config.SheetName == "" {
		return fmt.Errorf("missing variable: sheet_name")
	}
	if config.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("max_requests_per_second must be positive")
	}
	return nil
}

func (config SheetsConfig) bindEnvironmentVariables() error {
	return bindEnv(map[string]string{
		"sheets.spreadsheet_id":   "GOOGLE_SHEET_ID",
		"sheets.credentials_file": "GOOGLE_CREDENTIALS_FILE",
	})
}
