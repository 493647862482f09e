package config

import (
	"fmt"
	"strings"
	"time"
)

// DBConfig points at the sqlite file holding users, saved universities and notifications.
// Reminder batches and HTTP handlers write concurrently, so writers wait up to BusyTimeout
// for the lock instead of failing with SQLITE_BUSY.
type DBConfig struct {
	ConnectionString string        `mapstructure:"connection_string"`
	BusyTimeout      time.Duration `mapstructure:"busy_timeout"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout must not be negative")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return bindEnv(map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.busy_timeout":      "DB_BUSY_TIMEOUT",
	})
}

// DSN appends the sqlite pragmas to the connection string. Foreign keys are always on.
func (config DBConfig) DSN() string {
	pragmas := []string{"_pragma=foreign_keys(1)"}
	if config.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("_pragma=busy_timeout(%d)", config.BusyTimeout.Milliseconds()))
	}

	separator := "?"
	if strings.Contains(config.ConnectionString, "?") {
		separator = "&"
	}
	return config.ConnectionString + separator + strings.Join(pragmas, "&")
}
