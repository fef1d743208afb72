package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/voicecart/voicecart-server/config"
	"github.com/voicecart/voicecart-server/internal/app/controller"
	"github.com/voicecart/voicecart-server/internal/app/service"
	"github.com/voicecart/voicecart-server/internal/backend"
	"github.com/voicecart/voicecart-server/internal/credential"
	"github.com/voicecart/voicecart-server/internal/middleware"
	"github.com/voicecart/voicecart-server/internal/review"
	"github.com/voicecart/voicecart-server/internal/router"
	"github.com/voicecart/voicecart-server/internal/scheduler"
	"github.com/voicecart/voicecart-server/internal/shop"
	"github.com/voicecart/voicecart-server/internal/storage"
	"github.com/voicecart/voicecart-server/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Voice Cart Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Backend.BaseURL,
		"storage":     cfg.Storage.Driver,
		"log_level":   logLevel,
	})

	// Initialize durable storage for shopper session state
	store, err := newStorage(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", err)
		}
	}()

	// Initialize backend API client
	backendClient, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize backend client", err)
	}

	// Initialize core state
	shopManager := shop.NewManager(store)
	credentials := credential.NewResolver(store)
	reviewManager := review.NewManager(backendClient, credentials)

	// Initialize services
	catalogService := service.NewCatalogService(backendClient, cfg.Deals.CacheTTL)

	// Initialize controllers
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(shopManager, catalogService)
	wishlistController := controller.NewWishlistController(shopManager, catalogService)
	reviewController := controller.NewReviewController(reviewManager)
	authController := controller.NewAuthController(credentials)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.Secret, cfg.Session.TTL)

	// Start deals refresh scheduler
	dealsScheduler := scheduler.NewDealsScheduler(catalogService, cfg.Deals.RefreshSchedule)
	if err := dealsScheduler.Start(); err != nil {
		logger.Warn("Deals scheduler not running", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer dealsScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		wishlistController,
		reviewController,
		authController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

func newStorage(cfg *config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "redis":
		return storage.NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return storage.NewFileStorage(cfg.DataDir)
	}
}
