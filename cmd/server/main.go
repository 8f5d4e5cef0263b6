package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creat233/idfinder-sub001/internal/config"
	"github.com/creat233/idfinder-sub001/internal/handlers"
	"github.com/creat233/idfinder-sub001/internal/middleware"
	"github.com/creat233/idfinder-sub001/internal/repositories/mongodb"
	"github.com/creat233/idfinder-sub001/internal/services"
	"github.com/creat233/idfinder-sub001/pkg/cache"
	"github.com/creat233/idfinder-sub001/pkg/database"
	"github.com/creat233/idfinder-sub001/pkg/logger"
	"github.com/creat233/idfinder-sub001/pkg/mailer"
	"github.com/creat233/idfinder-sub001/pkg/sms"
	"github.com/creat233/idfinder-sub001/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  "json",
		Output:  "stdout",
		AppName: cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Infrastructure
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Repositories
	itemRepo := mongodb.NewReportedItemRepository(db.Database, redisCache)
	promoRepo := mongodb.NewPromoCodeRepository(db.Database, redisCache)
	usageRepo := mongodb.NewPromoUsageRepository(db.Database)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)
	auditRepo := mongodb.NewAuditLogRepository(db.Database)

	// Outbound channels
	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
		cfg.SMTP.FromName,
	)
	var smsProvider sms.SMSProvider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(
			cfg.SMS.Twilio.AccountSID,
			cfg.SMS.Twilio.AuthToken,
			cfg.SMS.Twilio.FromNumber,
		)
	}

	// Services
	notificationService := services.NewNotificationService(smtpMailer, smsProvider, notificationRepo, cfg.SMTP.OpsMailbox, appLogger)
	pricingService := services.NewPricingService(cfg.Pricing, appLogger)
	promoService := services.NewPromoService(promoRepo, usageRepo, notificationService, cfg.Pricing, appLogger)
	recoveryService := services.NewRecoveryService(itemRepo, auditRepo, promoService, pricingService, cfg.Pricing, notificationService, appLogger)
	payoutService := services.NewPayoutService(itemRepo, usageRepo, promoRepo, auditRepo, notificationService, cfg.Pricing, appLogger)

	// Background workers
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go services.NewExpiryWorker(promoService, appLogger).Start(ctx)

	// Handlers
	reportHandler := handlers.NewReportHandler(recoveryService, appLogger)
	promoHandler := handlers.NewPromoHandler(promoService, appLogger)
	adminHandler := handlers.NewAdminHandler(payoutService, appLogger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, appLogger)

	// Router
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupReportRoutes(v1, reportHandler, cfg.Security.JWTSecret)
		routes.SetupPromoRoutes(v1, promoHandler, cfg.Security.JWTSecret)
		routes.SetupAdminRoutes(v1, adminHandler, cfg.Security.JWTSecret)
		routes.SetupNotificationRoutes(v1, notificationHandler, cfg.Security.JWTSecret)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server stopped: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	<-ctx.Done()
	stop()
	appLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}
