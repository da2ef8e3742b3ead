package config

import (
	"github.com/customeros/statusstack/internal/database"
	"github.com/customeros/statusstack/internal/enum"
)

type AppConfig struct {
	APIPort     string `env:"PORT,required" envDefault:"12222"`
	APIKey      string `env:"API_KEY"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
	PodName     string `env:"POD_NAME"`
	Namespace   string `env:"POD_NAMESPACE" envDefault:"default"`
}

type ColumnStoreConfig struct {
	Backend        enum.StoreBackend `env:"COLUMN_STORE_BACKEND" envDefault:"badger"`
	BadgerDir      string            `env:"BADGER_DIR" envDefault:"./data/badger"`
	BadgerInMemory bool              `env:"BADGER_IN_MEMORY" envDefault:"false"`
}

type StatusstackDatabaseConfig struct {
	Host            string `env:"STATUSSTACK_POSTGRES_HOST"`
	Port            string `env:"STATUSSTACK_POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"STATUSSTACK_POSTGRES_USER"`
	DBName          string `env:"STATUSSTACK_POSTGRES_DB_NAME"`
	Password        string `env:"STATUSSTACK_POSTGRES_PASSWORD"`
	MaxConn         int    `env:"STATUSSTACK_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"STATUSSTACK_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"STATUSSTACK_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"STATUSSTACK_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"STATUSSTACK_POSTGRES_SSL_MODE" envDefault:"require"`
}

func (c *StatusstackDatabaseConfig) DatabaseConfig() *database.DatabaseConfig {
	return &database.DatabaseConfig{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		DBName:          c.DBName,
		Password:        c.Password,
		MaxConn:         c.MaxConn,
		MaxIdleConn:     c.MaxIdleConn,
		ConnMaxLifetime: c.ConnMaxLifetime,
		LogLevel:        c.LogLevel,
		SSLMode:         c.SSLMode,
	}
}

func (c *ColumnStoreConfig) BadgerConfig() *database.BadgerConfig {
	return &database.BadgerConfig{
		Dir:      c.BadgerDir,
		InMemory: c.BadgerInMemory,
	}
}
