// cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobtrack/internal/config"
	"jobtrack/internal/db"
	"jobtrack/internal/db/migrations"
	"jobtrack/internal/logger"
	"jobtrack/internal/routes"
)

// @title Job Tracker API
// @version 1.0
// @description Per-user job application tracker with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger.Init(cfg)
	defer logger.Log.Sync()

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET is required")
	}

	if err := db.CreateDatabaseIfNotExists(cfg.DatabaseURL); err != nil {
		logger.Log.Fatal("failed to ensure database exists", zap.Error(err))
	}

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.RunMigrations(database.DB); err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	s3Config, err := config.NewS3Config()
	if err != nil {
		logger.Log.Warn("S3 not configured, resume storage disabled", zap.Error(err))
		s3Config = &config.S3Config{}
	}

	router, err := routes.SetupRoutes(database.DB, cfg, s3Config)
	if err != nil {
		logger.Log.Fatal("failed to set up routes", zap.Error(err))
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	// Give server 5 seconds to finish current requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("server exiting")
}
