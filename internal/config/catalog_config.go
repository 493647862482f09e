package config

type CatalogConfig struct {
	File     string `mapstructure:"file"`
	SyncCron string `mapstructure:"sync_cron"`
}

func (config CatalogConfig) validate() error {
	return nil
}

func (config CatalogConfig) bindEnvironmentVariables() error {
	return bindEnv(map[string]string{
		"catalog.file":      "CATALOG_FILE",
		"catalog.sync_cron": "CATALOG_SYNC_CRON",
	})
}
