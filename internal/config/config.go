package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	DB        DBConfig        `mapstructure:"db"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Email     EmailConfig     `mapstructure:"email"`
	Reminders RemindersConfig `mapstructure:"reminders"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
}

var configFile = "./configs/config.yaml"

type section interface {
	validate() error
	bindEnvironmentVariables() error
}

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.output_file", "./logs/errors.log")
	viper.SetDefault("logger.app_name", "uninotify")
	viper.SetDefault("db.busy_timeout", "5s")
	viper.SetDefault("http.address", ":3000")
	viper.SetDefault("http.metrics_address", ":8080")
	viper.SetDefault("http.request_timeout", "30s")
	viper.SetDefault("sheets.sheet_name", "Sheet1")
	viper.SetDefault("sheets.max_requests_per_second", 1)
	viper.SetDefault("sheets.cache_ttl", "10m")
	viper.SetDefault("email.provider", string(EmailProviderConsole))
	viper.SetDefault("email.max_sends_per_second", 10)
	viper.SetDefault("reminders.cron", "0 9 * * *")
	viper.SetDefault("reminders.run_timeout", "5m")
	viper.SetDefault("catalog.sync_cron", "0 3 * * *")

	config := Config{}

	err := config.forEachSection(func(s section) error { return s.bindEnvironmentVariables() })
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.forEachSection(func(s section) error { return s.validate() })
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func (config Config) forEachSection(fn func(s section) error) error {
	sections := []struct {
		name string
		s    section
	}{
		{"LoggerConfig", config.Logger},
		{"DBConfig", config.DB},
		{"HTTPConfig", config.HTTP},
		{"SheetsConfig", config.Sheets},
		{"EmailConfig", config.Email},
		{"RemindersConfig", config.Reminders},
		{"CatalogConfig", config.Catalog},
	}

	var errs []error
	for _, entry := range sections {
		if err := fn(entry.s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindEnv(pairs map[string]string) error {
	var errs []error
	for key, env := range pairs {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
