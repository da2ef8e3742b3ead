package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestValidateConfig(t *testing.T) {
	assert.Error(t, validateConfig(nil))
	assert.Error(t, validateConfig(&DatabaseConfig{Host: "localhost"}))

	err := validateConfig(&DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "password",
		DBName:   "statusstack",
		SSLMode:  "disable",
	})
	assert.NoError(t, err)
}

func TestNewConnection_InvalidPort(t *testing.T) {
	_, err := NewConnection(&DatabaseConfig{
		Host:     "localhost",
		Port:     "not-a-port",
		User:     "postgres",
		Password: "password",
		DBName:   "statusstack",
		SSLMode:  "disable",
	})
	assert.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Warn, gormLogLevel("WARN"))
	assert.Equal(t, gormlogger.Info, gormLogLevel("info"))
	assert.Equal(t, gormlogger.Silent, gormLogLevel("SILENT"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel(""))
}

func TestOpenBadger(t *testing.T) {
	_, err := OpenBadger(nil, nil)
	assert.Error(t, err)

	_, err = OpenBadger(&BadgerConfig{}, nil)
	assert.Error(t, err)

	db, err := OpenBadger(&BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenBadger(&BadgerConfig{Dir: filepath.Join(t.TempDir(), "data")}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
