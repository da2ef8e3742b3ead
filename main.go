package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/customeros/statusstack/config"
	"github.com/customeros/statusstack/internal/database"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/validation"
	"github.com/customeros/statusstack/server"
	"github.com/customeros/statusstack/services"
)

func main() {
	app := &cli.App{
		Name:  "statusstack",
		Usage: "status timeline and attachment backend",
		Before: func(c *cli.Context) error {
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: migrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: serve,
			},
			{
				Name:   "purge",
				Usage:  "Archive and delete removed attachments once",
				Action: purge,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}
	return cfg
}

func migrate(_ *cli.Context) error {
	cfg := loadConfig()

	if cfg.ColumnStoreConfig.Backend != enum.StoreBackendPostgres {
		log.Printf("Column store backend %s needs no migration", cfg.ColumnStoreConfig.Backend)
		return nil
	}

	dbConfig := cfg.StatusstackDatabaseConfig.DatabaseConfig()
	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatalf("Statusstack database initialization failed: %v", err)
	}

	if err := repository.MigrateColumnStoreDB(dbConfig, db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database migration completed successfully")
	return nil
}

func serve(_ *cli.Context) error {
	cfg := loadConfig()
	log.Println("StatusStack starting up...")

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server startup failed: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func purge(c *cli.Context) error {
	cfg := loadConfig()

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	store, err := server.OpenColumnStore(cfg, appLogger)
	if err != nil {
		log.Fatalf("Column store initialization failed: %v", err)
	}
	defer store.Close()

	validator := validation.NewValidator()
	repos := repository.InitRepositories(store, validator, appLogger, *cfg.CacheConfig)
	svcs, err := services.InitServices(cfg.AppConfig.RabbitMQURL, cfg.R2StorageConfig, appLogger, repos, validator)
	if err != nil {
		log.Fatalf("Services initialization failed: %v", err)
	}
	defer svcs.EventsService.Close()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	purged, err := svcs.PurgeService.PurgeRemovedAttachments(ctx)
	if err != nil {
		return err
	}
	log.Printf("Purged %d removed attachments", purged)
	return nil
}
