package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/columnstore"
	"github.com/customeros/statusstack/internal/database"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/validation"
)

type Repositories struct {
	ColumnStore          interfaces.ColumnStore
	AttachmentRepository interfaces.AttachmentRepository
	StatusRepository     interfaces.StatusRepository
	TimelineRepository   interfaces.TimelineRepository
	DiscussionRepository interfaces.DiscussionRepository
	SharesRepository     interfaces.SharesRepository
}

func InitRepositories(store interfaces.ColumnStore, validator *validation.Validator, log logger.Logger, cacheConfig CacheConfig) *Repositories {
	return &Repositories{
		ColumnStore:          store,
		AttachmentRepository: NewCachedAttachmentRepository(NewAttachmentRepository(store, validator, log), cacheConfig),
		StatusRepository:     NewStatusRepository(store, validator, log),
		TimelineRepository:   NewTimelineRepository(store),
		DiscussionRepository: NewDiscussionRepository(store),
		SharesRepository:     NewSharesRepository(store),
	}
}

// MigrateColumnStoreDB creates the column family table, the badger backend
// needs no migration
func MigrateColumnStoreDB(dbConfig *database.DatabaseConfig, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(5)

	err = columnstore.MigratePostgresStore(db)

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConn)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConn)
	sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}
