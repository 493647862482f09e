package config

import (
	"fmt"
)

type EmailProvider string

const (
	EmailProviderConsole  EmailProvider = "console"
	EmailProviderSendgrid EmailProvider = "sendgrid"
)

type EmailConfig struct {
	Provider          EmailProvider `mapstructure:"provider"`
	SendgridAPIKey    string        `mapstructure:"sendgrid_api_key"`
	FromAddress       string        `mapstructure:"from_address"`
	FromName          string        `mapstructure:"from_name"`
	MaxSendsPerSecond float32       `mapstructure:"max_sends_per_second"`
}

func (config EmailConfig) validate() error {
	switch config.Provider {
	case EmailProviderConsole:
	case EmailProviderSendgrid:
		if config.SendgridAPIKey == "" {
			return fmt.Errorf("missing variable: sendgrid_api_key")
		}
	default:
		return fmt.Errorf("unknown email provider: %q", config.Provider)
	}

	if config.FromAddress == "" {
		return fmt.Errorf("missing variable: from_address")
	}
	return nil
}

func (config EmailConfig) bindEnvironmentVariables() error {
	return bindEnv(map[string]string{
		"email.provider":         "EMAIL_PROVIDER",
		"email.sendgrid_api_key": "SENDGRID_API_KEY",
		"email.from_address":     "EMAIL_FROM_ADDRESS",
	})
}
