package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hireloop/cv-ranker/internal/analyze"
	"github.com/hireloop/cv-ranker/internal/api/handler"
	"github.com/hireloop/cv-ranker/internal/api/router"
	"github.com/hireloop/cv-ranker/internal/config"
	"github.com/hireloop/cv-ranker/internal/engine/match"
	"github.com/hireloop/cv-ranker/internal/engine/rank"
	"github.com/hireloop/cv-ranker/internal/extract"
	"github.com/hireloop/cv-ranker/internal/jobstore"
	"github.com/hireloop/cv-ranker/internal/llm"
	"github.com/hireloop/cv-ranker/internal/notify"
	"github.com/hireloop/cv-ranker/internal/pipeline"
	"github.com/hireloop/cv-ranker/shared/logger"
	"github.com/hireloop/cv-ranker/shared/postgresql"
	"github.com/hireloop/cv-ranker/shared/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("CV_RANKER_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/cv-ranker/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting CV ranker service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Initialize the job store
	store, dbClient, err := initStore(cfg, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize job store: %w", err)
	}

	// Initialize RabbitMQ client and the completion notifier
	var (
		rabbitClient *rabbitmq.Client
		notifier     pipeline.Notifier
	)
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err = initRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		notifier = notify.New(rabbitClient, appLogger.Logger)

		appLogger.Info("RabbitMQ connection established")
	} else {
		appLogger.Info("RabbitMQ disabled, job completion events will not be published")
	}

	// Initialize the Gemini client
	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, &llm.Config{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	// Assemble the ranking pipeline
	extractor := extract.NewService(appLogger.Logger)
	jdAnalyzer := analyze.NewJDAnalyzer(llmClient, llmClient, appLogger.Logger)
	cvParser := analyze.NewCVParser(llmClient, extractor, appLogger.Logger)
	matcher := match.New(llmClient, appLogger.Logger)
	ranker := rank.New(appLogger.Logger)

	coordinator := pipeline.New(store, jdAnalyzer, cvParser, matcher, ranker, notifier, pipeline.Config{
		MaxConcurrentCVs: cfg.Pipeline.MaxConcurrentCVs,
		CleanupFiles:     cfg.Pipeline.CleanupFiles,
	}, appLogger.Logger)

	// Initialize router
	r := initRouter(cfg.App.Environment, appLogger.Logger, coordinator, store)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("CV ranker service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)

	// Cleanup function to close all resources
	cleanup := func() {
		cancel()
		if dbClient != nil {
			dbClient.Close()
		}
		if rabbitClient != nil {
			rabbitClient.Close()
		}
	}
	defer cleanup()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initStore selects the job store backend. The PostgreSQL client is returned
// alongside the store so shutdown can close it; it is nil for the memory
// driver.
func initStore(cfg *config.Config, logger *slog.Logger) (jobstore.Store, *postgresql.Client, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Info("Using in-memory job store")
		return jobstore.NewMemoryStore(), nil, nil

	case config.StoreDriverPostgres:
		dbClient, err := postgresql.NewClient(&postgresql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        os.Getenv("DB_PASSWORD"),
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return jobstore.NewPostgresStore(dbClient.GetDB()), dbClient, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver: %q", cfg.Store.Driver)
	}
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           os.Getenv("RABBITMQ_PASSWORD"),
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		RoutingKey:         cfg.RoutingKey,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
	}

	return rabbitmq.NewClient(rabbitConfig, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(environment string, logger *slog.Logger, coordinator *pipeline.Coordinator, store jobstore.Store) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:    logger,
		Submitter: coordinator,
		Store:     store,
	}

	return router.SetupRouter(handlerDeps)
}
