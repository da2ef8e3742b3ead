package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	cron_config "github.com/customeros/statusstack/internal/cron/config"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/services/storage"
)

type Config struct {
	AppConfig                 *AppConfig
	Logger                    *logger.Config
	Tracing                   *tracing.JaegerConfig
	ColumnStoreConfig         *ColumnStoreConfig
	StatusstackDatabaseConfig *StatusstackDatabaseConfig
	CacheConfig               *repository.CacheConfig
	R2StorageConfig           *storage.R2StorageConfig
	CronConfig                *cron_config.Config
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:                 &AppConfig{},
		Logger:                    &logger.Config{},
		Tracing:                   &tracing.JaegerConfig{},
		ColumnStoreConfig:         &ColumnStoreConfig{},
		StatusstackDatabaseConfig: &StatusstackDatabaseConfig{},
		CacheConfig:               &repository.CacheConfig{},
		R2StorageConfig:           &storage.R2StorageConfig{},
		CronConfig:                &cron_config.Config{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, errors.Wrap(err, "parse statusstack config")
	}

	switch config.ColumnStoreConfig.Backend {
	case "":
		config.ColumnStoreConfig.Backend = enum.StoreBackendBadger
	case enum.StoreBackendBadger, enum.StoreBackendPostgres:
	default:
		return nil, errors.Errorf("unknown column store backend %q", config.ColumnStoreConfig.Backend)
	}

	return config, nil
}
