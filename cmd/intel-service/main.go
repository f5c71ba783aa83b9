package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-intel-scryper/internal/intel/config"
	delivery "sales-intel-scryper/internal/intel/delivery/http"
	_ "sales-intel-scryper/internal/intel/docs"
	"sales-intel-scryper/internal/intel/repository"
	"sales-intel-scryper/internal/intel/service"
	"sales-intel-scryper/pkg/logger"
	"sales-intel-scryper/pkg/postgres"
	"sales-intel-scryper/pkg/redis"
	"sales-intel-scryper/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "intel-service",
	Short: "SEC EDGAR company intelligence service",
	Long:  `Resolves companies against SEC EDGAR, mines their filings for sales-relevant signals and serves the composed intelligence over HTTP.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the intelligence API service",
	Run:   runServe,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [company]",
	Short: "Fetches intelligence for one company and prints it as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runFetch,
}

var forceRefresh bool

func buildIntelService(cfg *config.Config, appLogger *logger.Logger) (service.IntelService, repository.CacheRepository, func(), error) {
	cleanup := func() {}

	var cacheRepo repository.CacheRepository
	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("failed to initialize redis: %w", err)
		}
		cleanup = func() { _ = redisClient.Close() }
		cacheRepo = repository.NewRedisCacheRepository(redisClient.Client, cfg.Cache.KeyPrefix, appLogger)
	default:
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("failed to initialize database: %w", err)
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			cleanup = func() { _ = sqlDB.Close() }
		}
		cacheRepo = repository.NewPostgresCacheRepository(db.DB, appLogger)
	}

	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		var err error
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Failed to initialize Telegram notifier, alerts disabled", logger.ErrorField(err))
			notifier = nil
		}
	}

	edgarRepo := repository.NewEdgarRepository(cfg.Edgar, appLogger)
	return service.NewIntelService(edgarRepo, cacheRepo, notifier, appLogger), cacheRepo, cleanup, nil
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Intelligence Service", logger.Field("name", cfg.App.Name))

	intelSvc, cacheRepo, cleanup, err := buildIntelService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build intelligence service", logger.ErrorField(err))
	}
	defer cleanup()

	if cfg.Janitor.Enabled {
		janitor := service.NewCacheJanitor(cacheRepo, intelSvc, cfg.Janitor, appLogger)
		go janitor.Start(ctx)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	intelHandler := delivery.NewIntelHandler(intelSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	intelHandler.RegisterRoutes(apiV1.Group("/intelligence"))

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down Intelligence Service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down server gracefully", logger.ErrorField(err))
	}
}

func runFetch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	intelSvc, _, cleanup, err := buildIntelService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build intelligence service", logger.ErrorField(err))
	}
	defer cleanup()

	data, err := intelSvc.GetIntelligence(ctx, args[0], forceRefresh)
	if err != nil {
		appLogger.Fatal("Failed to fetch intelligence", logger.StringField("company", args[0]), logger.ErrorField(err))
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to marshal intelligence", logger.ErrorField(err))
	}
	fmt.Println(string(out))
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	fetchCmd.Flags().BoolVar(&forceRefresh, "refresh", false, "Bypass the cache and re-run the pipeline")
	rootCmd.AddCommand(serveCmd, fetchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing intel-service CLI: %s\n", err)
		os.Exit(1)
	}
}
