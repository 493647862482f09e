package config

import (
	"fmt"
	"time"
)

type StaticRecipient struct {
	ID    string `mapstructure:"id"`
	Email string `mapstructure:"email"`
}

// RemindersConfig drives the deadline reminder batch. When StaticRecipients is set every
// due university is announced to that fixed list instead of the users who saved it.
type RemindersConfig struct {
	Cron             string            `mapstructure:"cron"`
	RunTimeout       time.Duration     `mapstructure:"run_timeout"`
	StaticRecipients []StaticRecipient `mapstructure:"static_recipients"`
}

func (config RemindersConfig) validate() error {
	if config.Cron == "" {
		return fmt.Errorf("missing variable: cron")
	}
	if config.RunTimeout <= 0 {
		return fmt.Errorf("run_timeout must be positive")
	}
	for i, recipient := range config.StaticRecipients {
		if recipient.ID == "" || recipient.Email == "" {
			return fmt.Errorf("static_recipients[%d]: id and email are required", i)
		}
	}
	return nil
}

func (config RemindersConfig) bindEnvironmentVariables() error {
	return bindEnv(map[string]string{
		"reminders.cron": "REMINDERS_CRON",
	})
}
