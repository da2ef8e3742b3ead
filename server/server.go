package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/customeros/statusstack/api"
	"github.com/customeros/statusstack/config"
	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/columnstore"
	"github.com/customeros/statusstack/internal/cron"
	"github.com/customeros/statusstack/internal/database"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/validation"
	"github.com/customeros/statusstack/services"
)

type Server struct {
	config       *config.Config
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	store        interfaces.ColumnStore
	validator    *validation.Validator
	services     *services.Services
	repositories *repository.Repositories
	cronManager  *cron.CronManager
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	// Initialize tracing
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)

	store, err := OpenColumnStore(cfg, appLogger)
	if err != nil {
		closer.Close()
		return nil, err
	}

	// one validator for the whole process
	validator := validation.NewValidator()

	repos := repository.InitRepositories(store, validator, appLogger, *cfg.CacheConfig)

	svcs, err := services.InitServices(cfg.AppConfig.RabbitMQURL, cfg.R2StorageConfig, appLogger, repos, validator)
	if err != nil {
		store.Close()
		closer.Close()
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	return &Server{
		config:       cfg,
		log:          appLogger,
		router:       router,
		store:        store,
		validator:    validator,
		services:     svcs,
		repositories: repos,
		cronManager:  cron.NewCronManager(cfg.CronConfig, appLogger, kubernetesClient(appLogger), svcs.PurgeService),
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppConfig.APIPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// OpenColumnStore opens the configured column store backend
func OpenColumnStore(cfg *config.Config, log logger.Logger) (interfaces.ColumnStore, error) {
	switch cfg.ColumnStoreConfig.Backend {
	case enum.StoreBackendPostgres:
		db, err := database.NewConnection(cfg.StatusstackDatabaseConfig.DatabaseConfig())
		if err != nil {
			return nil, errors.Wrap(err, "connect to postgres")
		}
		return columnstore.NewPostgresStore(db), nil
	default:
		db, err := database.OpenBadger(cfg.ColumnStoreConfig.BadgerConfig(), log)
		if err != nil {
			return nil, err
		}
		return columnstore.NewBadgerStore(db), nil
	}
}

// kubernetesClient is nil outside a cluster, the cron manager then runs
// without leader election
func kubernetesClient(log logger.Logger) kubernetes.Interface {
	restConfig, err := rest.InClusterConfig()
	if err != nil {
		log.Infof("Not running in kubernetes: %v", err)
		return nil
	}
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		log.Warnf("Could not create kubernetes client: %v", err)
		return nil
	}
	return clientset
}

func (s *Server) Initialize() {
	api.RegisterRoutes(s.router, s.services, s.validator, s.log, s.config.AppConfig.APIKey)
}

func (s *Server) recoverWithJaeger(name string) {
	if r := recover(); r != nil {
		span := opentracing.GlobalTracer().StartSpan(
			fmt.Sprintf("panic.%s", name),
		)
		defer span.Finish()

		ext.Error.Set(span, true)

		span.LogKV(
			"event", "panic",
			"process", name,
			"error", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)

		log.Printf("❌ Panic in %s: %v\n%s", name, r, debug.Stack())
	}
}

func (s *Server) wrapGoroutine(name string, fn func()) {
	defer s.recoverWithJaeger(name)
	fn()
}

func (s *Server) Run() error {
	s.Initialize()

	go s.wrapGoroutine("cron_manager", func() {
		if err := s.cronManager.Start(s.config.AppConfig.PodName, s.config.AppConfig.Namespace); err != nil {
			log.Printf("❌ Cron manager error: %v", err)
		}
	})

	go s.wrapGoroutine("http_server", func() {
		log.Println("Starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	})
	log.Println("✅ HTTP server started successfully")
	log.Println("StatusStack is now running. Press Ctrl+C to exit.")

	return s.waitForShutdown()
}

func (s *Server) waitForShutdown() error {
	defer s.recoverWithJaeger("shutdown")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	log.Println("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ HTTP server shutdown error: %v", err)
	} else {
		log.Println("✅ HTTP server shut down successfully")
	}

	s.cronManager.Stop()

	if err := s.services.EventsService.Close(); err != nil {
		log.Printf("❌ Events publisher shutdown error: %v", err)
	}
	if err := s.store.Close(); err != nil {
		log.Printf("❌ Column store shutdown error: %v", err)
	}
	if s.tracerCloser != nil {
		s.tracerCloser.Close()
	}

	return nil
}
