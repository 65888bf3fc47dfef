package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annazecevic/catalog-service/config"
	"github.com/annazecevic/catalog-service/handler"
	"github.com/annazecevic/catalog-service/logger"
	"github.com/annazecevic/catalog-service/middleware"
	"github.com/annazecevic/catalog-service/repository"
	"github.com/annazecevic/catalog-service/service"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {

	cfg := config.LoadConfig()

	logger.Init(logger.Config{
		ServiceName: "catalog-service",
		Environment: cfg.Environment,
		LogFilePath: cfg.LogFilePath,
		HMACKey:     cfg.LogHMACKey,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})

	logger.Info(logger.EventServiceStartup, "Catalog service starting", logger.Fields(
		"port", cfg.ServerPort,
		"environment", cfg.Environment,
	))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Fatal(logger.EventDBError, "Failed to connect to MongoDB", logger.Fields("error", err.Error()))
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal(logger.EventDBError, "Failed to ping MongoDB", logger.Fields("error", err.Error()))
	}

	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error(logger.EventDBError, "Error disconnecting from MongoDB", logger.Fields("error", err.Error()))
		}
	}()

	logger.Info(logger.EventDBConnection, "Connected to MongoDB successfully", logger.Fields(
		"database", cfg.MongoDatabase,
		"collection", cfg.MongoCollection,
	))

	db := client.Database(cfg.MongoDatabase)

	albumRepo := repository.NewAlbumRepository(db, cfg.MongoCollection)
	albumService := service.NewAlbumService(albumRepo)
	albumHandler := handler.NewAlbumHandler(albumService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.RedirectTrailingSlash = false

	router.Use(middleware.RequestID())
	router.Use(middleware.NewValidationMiddleware(cfg.MaxBodyBytes).ValidateRequest())
	router.Use(middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Middleware())

	albumHandler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info(logger.EventServiceStartup, "Server starting", logger.Fields("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(logger.EventGeneral, "Failed to start server", logger.Fields("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(logger.EventServiceShutdown, "Shutdown signal received", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(logger.EventServiceShutdown, "Forced shutdown", logger.Fields("error", err.Error()))
	}

	logger.Info(logger.EventServiceShutdown, "Catalog service stopped", nil)
}
