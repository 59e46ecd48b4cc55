package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/application/sync"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/config"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/lock"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/logger"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/odoo"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/telemetry"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/woocommerce"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/interfaces/http/handler"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting order sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	telemetry.Register()

	// ERP session. Credentials are checked when a run authenticates,
	// not here, so a misconfigured deployment still starts and answers
	// health checks.
	session := odoo.NewSession(&odoo.Config{
		URL:      cfg.Odoo.URL,
		Database: cfg.Odoo.Database,
		Login:    cfg.Odoo.Login,
		Password: cfg.Odoo.Password,
		Timeout:  cfg.Odoo.Timeout,
	})

	// Storefront listing client
	source := woocommerce.NewClient(&woocommerce.Config{
		BaseURL:        cfg.WooCommerce.BaseURL,
		ConsumerKey:    cfg.WooCommerce.ConsumerKey,
		ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
		PageSize:       cfg.WooCommerce.PageSize,
	})

	resolver := appsync.NewResolver(session)
	importer := appsync.NewImporter(session, resolver, log.Named("importer"))

	opts := []appsync.Option{appsync.WithPageSize(cfg.WooCommerce.PageSize)}

	// Optional distributed per-order lock
	if cfg.Redis.Addr != "" {
		locker, err := lock.NewRedisLocker(lock.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.LockTTL,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		opts = append(opts, appsync.WithLocker(locker))
		log.Info("Per-order locking enabled", zap.String("addr", cfg.Redis.Addr))
	}

	service := appsync.NewService(session, source, importer, log.Named("sync"), opts...)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(log, handler.NewSyncHandler(service))

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
