package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexora/nexora-backend/config"
	"github.com/nexora/nexora-backend/internal/app/controller"
	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/internal/app/service"
	"github.com/nexora/nexora-backend/internal/db"
	"github.com/nexora/nexora-backend/internal/middleware"
	"github.com/nexora/nexora-backend/internal/router"
	"github.com/nexora/nexora-backend/internal/scheduler"
	"github.com/nexora/nexora-backend/internal/storage"
	"github.com/nexora/nexora-backend/internal/websocket"
	"github.com/nexora/nexora-backend/pkg/logger"
	"github.com/nexora/nexora-backend/pkg/mailer"
	"github.com/nexora/nexora-backend/pkg/redis"
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

	logger.Info("Starting NEXORA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the token blacklist; the server runs without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Notification hub for in-app push
	hub := websocket.NewHub()
	go hub.Run()

	mailClient := mailer.NewSMTPClient(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	notifier := service.NewNotifier(mailClient, notificationRepo, userRepo, hub, cfg.SMTP.OpsEmail)
	ratingService := service.NewRatingService(reviewRepo, productRepo)
	productService := service.NewProductService(productRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo, ratingService, notifier)
	notificationService := service.NewNotificationService(notificationRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.RefreshTokenExpiry)
	productController := controller.NewProductController(productService, reviewService)
	reviewController := controller.NewReviewController(reviewService)
	notificationController := controller.NewNotificationController(notificationService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Nightly aggregate reconciliation
	ratingScheduler := scheduler.NewRatingScheduler(ratingService)
	if err := ratingScheduler.Start(); err != nil {
		logger.Error("Failed to start rating scheduler", err)
	}
	defer ratingScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		reviewController,
		notificationController,
		uploadController,
		authMiddleware,
		hub,
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
