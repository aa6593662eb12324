package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/controller"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/db"
	"github.com/bitebakers/brownie-backend/internal/middleware"
	"github.com/bitebakers/brownie-backend/internal/payment"
	"github.com/bitebakers/brownie-backend/internal/router"
	"github.com/bitebakers/brownie-backend/internal/scheduler"
	"github.com/bitebakers/brownie-backend/internal/storage"
	"github.com/bitebakers/brownie-backend/internal/websocket"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"github.com/bitebakers/brownie-backend/pkg/mailer"
	"github.com/bitebakers/brownie-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting BiteBakers Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err, nil)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it, logout token revocation degrades
	// to letting tokens age out.
	redis.Init(&cfg.Redis)
	defer redis.Close()

	// Admin push hub
	hub := websocket.NewHub()
	go hub.Run()

	mail := mailer.NewSMTPMailer(cfg.SMTP, cfg.Server.FrontendURL)

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())
	feedbackRepo := repository.NewFeedbackRepository(db.GetDB())
	inventoryLogRepo := repository.NewInventoryLogRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())
	homeContentRepo := repository.NewHomeContentRepository(db.GetDB())

	// Services
	notificationService := service.NewNotificationService(notificationRepo, hub)
	authService := service.NewAuthService(
		userRepo,
		notificationService,
		mail,
		service.NewGoogleVerifier(cfg.Google.ClientID),
		cfg.JWT,
		cfg.Server.FrontendURL,
	)
	productService := service.NewProductService(productRepo)
	couponService := service.NewCouponService(couponRepo, orderRepo)
	orderService := service.NewOrderService(
		db.GetDB(),
		orderRepo,
		productRepo,
		couponService,
		notificationService,
		mail,
		cfg.Inventory,
	)
	feedbackService := service.NewFeedbackService(feedbackRepo, orderRepo, notificationService)
	inventoryService := service.NewInventoryService(productRepo, inventoryLogRepo, notificationService)
	contactService := service.NewContactService(contactRepo)
	contentService := service.NewContentService(homeContentRepo)

	paymentClient := payment.NewClient(cfg.Payment)
	s3Storage := storage.NewS3Storage(cfg.S3)

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	orderController := controller.NewOrderController(orderService)
	couponController := controller.NewCouponController(couponService)
	feedbackController := controller.NewFeedbackController(feedbackService)
	inventoryController := controller.NewInventoryController(inventoryService)
	notificationController := controller.NewNotificationController(notificationService, hub)
	contactController := controller.NewContactController(contactService)
	contentController := controller.NewContentController(contentService)
	paymentController := controller.NewPaymentController(paymentClient)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	couponScheduler := scheduler.NewCouponScheduler(couponService)
	if err := couponScheduler.Start(); err != nil {
		logger.Warn("Coupon scheduler failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer couponScheduler.Stop()

	r := router.NewRouter(
		authController,
		productController,
		orderController,
		couponController,
		feedbackController,
		inventoryController,
		notificationController,
		contactController,
		contentController,
		paymentController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...", nil)
	logger.Info("Server stopped successfully", nil)
}
