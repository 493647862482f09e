package config

import (
	"fmt"
	"time"
)

type HTTPConfig struct {
	Address        string        `mapstructure:"address"`
	MetricsAddress string        `mapstructure:"metrics_address"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Debug          bool          `mapstructure:"debug"`
}

func (config HTTPConfig) validate() error {
	if config.Address == "" {
		return fmt.Errorf("missing variable: address")
	}
	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

func (config HTTPConfig) bindEnvironmentVariables() error {
	return bindEnv(map[string]string{
		"http.address":         "HTTP_ADDRESS",
		"http.metrics_address": "METRICS_ADDRESS",
		"http.debug":           "HTTP_DEBUG",
	})
}
