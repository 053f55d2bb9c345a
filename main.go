package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelhub/config"
	"hotelhub/jobs"
	"hotelhub/middleware"
	"hotelhub/routes"
	"hotelhub/services/logger"
	"hotelhub/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogDir != "" {
		fileLogger, closer, err := logger.NewFileLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogDir)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer closer.Close()
		appLogger = fileLogger
	}

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	rdb, err := config.ConnectRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		log.Fatalf("Failed to init cloudinary: %v", err)
	}
	if err := validator.RegisterBindings(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	router, m, c := config.InitApp(cfg)
	router.Use(middleware.RequestLogger(appLogger))

	alertJob := routes.SetupRoutes(router, routes.Deps{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		Cloudinary: cld,
		Melody:     m,
		Logger:     appLogger,
	})

	if err := jobs.InitCronJobs(c, cfg.PriceAlertCron, alertJob); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutdown signal received")

	<-c.Stop().Done()
	if err := m.Close(); err != nil {
		appLogger.Error("melody close: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown: %v", err)
	}
	if rdb != nil {
		closeQuietly(rdb, appLogger)
	}
	if sqlDB, err := db.DB(); err == nil {
		closeQuietly(sqlDB, appLogger)
	}
	appLogger.Info("Server stopped gracefully")
}

func closeQuietly(c io.Closer, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Error("close: %v", err)
	}
}
